package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
)

// The built-in PDF fonts are cp1252, which has no Polish letters.
var pdfFold = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n", "ó", "o", "ś", "s", "ź", "z", "ż", "z",
	"Ą", "A", "Ć", "C", "Ę", "E", "Ł", "L", "Ń", "N", "Ó", "O", "Ś", "S", "Ź", "Z", "Ż", "Z",
	"–", "-",
)

func pdfText(s string) string {
	return pdfFold.Replace(s)
}

func pdfAmount(v float64) string {
	return FormatAmount(v) + " PLN"
}

// QuoteFilename is the attachment / download name of an order's quote PDF.
func QuoteFilename(order *models.Order) string {
	return fmt.Sprintf("zapytanie-%s.pdf", order.OrderNumber)
}

// GenerateQuotePDF renders the quote request as an A4 document: seller,
// customer, line items and the indicative total.
func GenerateQuotePDF(order *models.Order, shop config.ShopConfig) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	dark := color.Color{Red: 22, Green: 50, Blue: 63}
	muted := color.Color{Red: 91, Green: 107, Blue: 115}
	accent := color.Color{Red: 14, Green: 116, Blue: 144}

	text := func(s string, size float64, c color.Color, bold bool, align consts.Align) {
		p := props.Text{Size: size, Color: c, Align: align}
		if bold {
			p.Style = consts.Bold
		}
		m.Text(pdfText(s), p)
	}

	m.Row(15, func() {
		m.Col(8, func() {
			text("ZAPYTANIE OFERTOWE", 20, accent, true, consts.Left)
		})
		m.Col(4, func() {
			text(order.OrderNumber, 11, dark, true, consts.Right)
		})
	})

	m.Row(8, func() {
		m.Col(12, func() {
			text(shop.Name, 14, dark, true, consts.Left)
		})
	})
	seller := []string{shop.Address, "tel. " + shop.Phone, shop.StaffEmail}
	if shop.NIP != "" {
		seller = append(seller, "NIP "+shop.NIP)
	}
	for _, line := range seller {
		m.Row(5, func() {
			m.Col(12, func() {
				text(line, 9, muted, false, consts.Left)
			})
		})
	}

	m.Row(8, func() {})

	c := order.Customer
	validUntil := order.CreatedAt.AddDate(0, 0, shop.QuoteValidDays)
	left := []string{c.FullName(), c.Email, c.Phone}
	if c.Company != nil && *c.Company != "" {
		left = append(left, *c.Company)
	}
	if c.NIP != nil && *c.NIP != "" {
		left = append(left, "NIP "+*c.NIP)
	}
	right := []string{
		"Data: " + order.CreatedAt.Format("02.01.2006"),
		"Wazne do: " + validUntil.Format("02.01.2006"),
		"Status: " + models.OrderStatusLabels[order.Status],
	}

	m.Row(5, func() {
		m.Col(6, func() {
			text("KLIENT", 8, dark, true, consts.Left)
		})
		m.Col(6, func() {
			text("SZCZEGOLY", 8, dark, true, consts.Right)
		})
	})
	for i := 0; i < max(len(left), len(right)); i++ {
		m.Row(5, func() {
			m.Col(6, func() {
				if i < len(left) {
					text(left[i], 9, dark, i == 0, consts.Left)
				}
			})
			m.Col(6, func() {
				if i < len(right) {
					text(right[i], 9, muted, false, consts.Right)
				}
			})
		})
	}

	m.Row(8, func() {})
	m.Line(1, props.Line{Color: muted})

	m.Row(7, func() {
		m.Col(6, func() {
			text("Produkt", 8, dark, true, consts.Left)
		})
		m.Col(2, func() {
			text("Ilosc", 8, dark, true, consts.Right)
		})
		m.Col(2, func() {
			text("Cena", 8, dark, true, consts.Right)
		})
		m.Col(2, func() {
			text("Wartosc", 8, dark, true, consts.Right)
		})
	})

	for _, item := range order.Items() {
		m.Row(6, func() {
			m.Col(6, func() {
				text(item.Name, 9, dark, false, consts.Left)
			})
			m.Col(2, func() {
				text(fmt.Sprintf("%d", item.Quantity), 9, dark, false, consts.Right)
			})
			m.Col(2, func() {
				text(pdfAmount(item.Price), 9, dark, false, consts.Right)
			})
			m.Col(2, func() {
				text(pdfAmount(item.Price*float64(item.Quantity)), 9, dark, false, consts.Right)
			})
		})
	}

	m.Line(1, props.Line{Color: muted})

	m.Row(8, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			text("Razem", 10, dark, true, consts.Right)
		})
		m.Col(2, func() {
			text(pdfAmount(order.Total), 10, accent, true, consts.Right)
		})
	})

	if msg := deref(c.Message); msg != "" {
		m.Row(8, func() {})
		m.Row(5, func() {
			m.Col(12, func() {
				text("Wiadomosc od klienta", 8, dark, true, consts.Left)
			})
		})
		m.Row(15, func() {
			m.Col(12, func() {
				text(msg, 9, muted, false, consts.Left)
			})
		})
	}

	m.Row(10, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			text("Ceny maja charakter orientacyjny. Ostateczna oferta zostanie przeslana przez doradce.", 8, muted, false, consts.Left)
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}
