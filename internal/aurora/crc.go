package aurora

import "github.com/sigurn/crc16"

// Frames carry CRC16 CCITT-FALSE transmitted low byte first. Some field
// units have been reported answering with X.25 checksums instead; if a
// device rejects every frame, swap the table parameter and re-verify
// against its traffic.
var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

func checksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}

func crcLo(v uint16) byte { return byte(v) }
func crcHi(v uint16) byte { return byte(v >> 8) }
