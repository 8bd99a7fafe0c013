// Package donor ведёт список пожертвований для страницы доноров: новые записи
// добавляются в начало, весь список хранится одним JSON-значением под ключом StorageKey.
package donor

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorageKey - ключ, под которым хранится список доноров.
const StorageKey = "nulltracker_donors"

// Anonymous подставляется вместо имени, если донор не указал его или скрыл.
const Anonymous = "Anonymous"

// Record - одно пожертвование.
type Record struct {
	ID           string          `json:"id"`
	PayerID      string          `json:"payerId"`
	PayerEmail   string          `json:"payerEmail"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	DonorName    string          `json:"donorName"`
	DonorEmail   string          `json:"donorEmail,omitempty"`
	DonorMessage string          `json:"donorMessage,omitempty"`
	ShowPublicly bool            `json:"showPublicly"`
	Timestamp    time.Time       `json:"timestamp"`
	Date         string          `json:"date"`
}

// PublicEntry - запись в том виде, в каком она показывается на странице.
type PublicEntry struct {
	Rank    int             `json:"rank"`
	Name    string          `json:"name"`
	Message string          `json:"message,omitempty"`
	Date    string          `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
}

// ExportedDonor - запись в выгрузке.
type ExportedDonor struct {
	ID           string          `json:"id"`
	PayerID      string          `json:"payerId"`
	PayerEmail   string          `json:"payerEmail"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	DonorName    string          `json:"donorName"`
	DonorEmail   string          `json:"donorEmail"`
	DonorMessage string          `json:"donorMessage"`
	Timestamp    time.Time       `json:"timestamp"`
	Date         string          `json:"date"`
}

// Export - документ выгрузки списка доноров.
type Export struct {
	ExportDate  time.Time       `json:"exportDate"`
	TotalDonors int             `json:"totalDonors"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Donors      []ExportedDonor `json:"donors"`
}

// FileName возвращает имя файла выгрузки: nulltracker_donors_<YYYY-MM-DD>.json.
func (e *Export) FileName() string {
	return StorageKey + "_" + e.ExportDate.UTC().Format(time.DateOnly) + ".json"
}
