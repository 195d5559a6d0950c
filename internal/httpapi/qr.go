package httpapi

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/user/fito-garden/internal/types"
)

// JoinQR renders the video-session join link for an appointment as a QR
// code, so the session can be opened on a second device.
type JoinQR struct {
	baseURL string
	size    int
}

// NewJoinQR creates a QR renderer rooted at baseURL.
func NewJoinQR(baseURL string) *JoinQR {
	return &JoinQR{
		baseURL: baseURL,
		size:    256,
	}
}

// JoinURL builds the join link for the appointment.
func (j *JoinQR) JoinURL(appointment types.Appointment) string {
	query := url.Values{}
	query.Set("therapist", appointment.Therapist)
	query.Set("at", appointment.DateTime.Format("2006-01-02T15:04:05Z07:00"))
	return fmt.Sprintf("%s/join?%s", j.baseURL, query.Encode())
}

// PNG encodes the appointment join link as a PNG QR code.
func (j *JoinQR) PNG(appointment types.Appointment) ([]byte, error) {
	png, err := qrcode.Encode(j.JoinURL(appointment), qrcode.Medium, j.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode join link: %w", err)
	}
	return png, nil
}
