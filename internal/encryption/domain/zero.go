package domain

// Zero overwrites every given byte slice with zeros so derived keys and
// decrypted peppers do not linger in memory longer than needed.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		for i := range b {
			b[i] = 0
		}
	}
}
