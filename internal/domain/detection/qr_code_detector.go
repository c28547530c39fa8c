package detection

// CheckQRCodes decodes the QR codes embedded in the body and returns the
// URLs they point to. Image decoding is not wired in, so nothing is ever
// decoded.
func CheckQRCodes(body string) QRCodeReport {
	return QRCodeReport{}
}
