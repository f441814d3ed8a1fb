// Package ahoy implements the link- and transport-layer driver for talking to
// Hoymiles HM-300/600/1200 micro-inverters over a 2.4 GHz nRF24L01+ radio using
// Nordic Enhanced ShockBurst (ESB).
//
// The package frames commands into ESB fragments, reassembles multi-fragment
// replies arriving on hopping RX channels, validates the per-fragment CRC-8 and
// the reassembled payload's Modbus CRC-16, schedules retransmit requests for
// missing fragments, and hands the reassembled payload to the ahoy/decode
// package for decoding into telemetry.
//
// Concrete access to the nRF24L01+ chip (SPI/GPIO wiring) is outside this
// package's scope; it is abstracted behind the ahoy/nrf24.Radio capability
// interface so callers can supply whatever driver matches their hardware.
package ahoy
