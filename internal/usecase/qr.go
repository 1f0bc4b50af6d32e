package usecase

import (
	"encoding/base64"
	"strings"

	"resume-builder/internal/model"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrSizePx = 256

// GenerateQRCode encodes url as a QR bitmap and stores the base64 PNG on
// the matching portfolio item. URLs without a scheme get https:// prefixed.
// Encoding failures are logged and leave the item unchanged; the caller
// sees changed=false but no error surfaces past this layer.
func (m *Mutator) GenerateQRCode(doc *model.Document, portfolioID, rawURL string) bool {
	if rawURL == "" {
		return false
	}
	target := rawURL
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	png, err := qrcode.Encode(target, qrcode.Medium, qrSizePx)
	if err != nil {
		if m.log != nil {
			m.log.Warn("qr encode failed", zap.String("portfolioId", portfolioID), zap.Error(err))
		}
		return false
	}
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	items, changed := updateByID(doc.Portfolio, portfolioID,
		func(p model.PortfolioItem) string { return p.ID },
		func(p *model.PortfolioItem) {
			p.QRCode = encoded
			p.URL = target
		})
	doc.Portfolio = items
	return changed
}
