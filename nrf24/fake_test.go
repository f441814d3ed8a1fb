package nrf24

import "testing"

func TestFakeDeliversOnlyWhileListeningOnMatchingChannel(t *testing.T) {
	f := NewFake()
	f.QueueOnChannel(40, []byte{0x01, 0x02, 0x03})

	f.SetChannel(3)
	f.StartListening()
	if has, _ := f.AvailablePipe(); has {
		t.Fatalf("did not expect a payload on channel 3")
	}

	f.SetChannel(40)
	has, pipe := f.AvailablePipe()
	if !has || pipe != 1 {
		t.Fatalf("AvailablePipe() = (%v, %d), want (true, 1)", has, pipe)
	}
	if n := f.GetDynamicPayloadSize(); n != 3 {
		t.Fatalf("GetDynamicPayloadSize() = %d, want 3", n)
	}
	got, err := f.Read(3)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 3 || got[0] != 0x01 {
		t.Fatalf("Read() = % x", got)
	}
	if has, _ := f.AvailablePipe(); has {
		t.Fatalf("expected inbox to be drained")
	}
}

func TestFakeWriteRecordsSentPackets(t *testing.T) {
	f := NewFake()
	ok, err := f.Write([]byte{0xAA})
	if err != nil || !ok {
		t.Fatalf("Write() = (%v, %v), want (true, nil)", ok, err)
	}
	if len(f.Sent) != 1 {
		t.Fatalf("len(Sent) = %d, want 1", len(f.Sent))
	}

	f.AckWrites = false
	ok, err = f.Write([]byte{0xBB})
	if ok || err == nil {
		t.Fatalf("Write() = (%v, %v), want (false, err)", ok, err)
	}
}

func TestFakeStopListeningSuppressesDelivery(t *testing.T) {
	f := NewFake()
	f.QueueOnChannel(1, []byte{0x01})
	f.SetChannel(1)
	if has, _ := f.AvailablePipe(); has {
		t.Fatalf("did not expect delivery before StartListening")
	}
	f.StartListening()
	if has, _ := f.AvailablePipe(); !has {
		t.Fatalf("expected delivery while listening")
	}
	f.StopListening()
	if has, _ := f.AvailablePipe(); has {
		t.Fatalf("did not expect delivery after StopListening")
	}
}
