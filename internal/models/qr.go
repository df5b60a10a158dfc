package models

// QRData is the payload encoded into an attendance QR code.
type QRData struct {
	BatchID   string `json:"batchId"`
	SubjectID string `json:"subjectId"`
	Date      string `json:"date"`
}

// QRCode is the generator's response.
type QRCode struct {
	DataURL string `json:"qrCodeDataURL"`
	QRData
}
