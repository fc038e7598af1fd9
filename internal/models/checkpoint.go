package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ScanType enumerates checkpoint scan technologies.
type ScanType string

const (
	ScanTypeNFC       ScanType = "nfc"
	ScanTypeQR        ScanType = "qr"
	ScanTypeDynamicQR ScanType = "dynamic-qr"
)

// Valid reports whether the scan type is a known value.
func (s ScanType) Valid() bool {
	switch s {
	case ScanTypeNFC, ScanTypeQR, ScanTypeDynamicQR:
		return true
	}
	return false
}

// NFCConfig is the stored NFC tag configuration (jsonb column).
type NFCConfig struct {
	Payload          string `json:"payload,omitempty"`
	TagSerial        string `json:"tag_serial,omitempty"`
	Configured       bool   `json:"configured"`
	LastConfiguredAt string `json:"last_configured_at,omitempty"`
}

// Value implements driver.Valuer.
func (c NFCConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *NFCConfig) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// QRConfig is the stored QR configuration (jsonb column). Dynamic QR
// checkpoints carry a rotation interval and a payload template.
type QRConfig struct {
	Payload            string `json:"payload,omitempty"`
	Size               int    `json:"size,omitempty"`
	Dynamic            bool   `json:"dynamic"`
	RotateEveryMinutes int    `json:"rotate_every_minutes,omitempty"`
	Configured         bool   `json:"configured"`
	LastGeneratedAt    string `json:"last_generated_at,omitempty"`
}

// Value implements driver.Valuer.
func (c QRConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *QRConfig) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Checkpoint represents a physical patrol checkpoint within a zone.
type Checkpoint struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	ZoneID    string         `db:"zone_id" json:"zone_id"`
	ZoneName  string         `db:"zone_name" json:"zone_name"`
	ScanTypes pq.StringArray `db:"scan_types" json:"scan_types"`
	TagID     string         `db:"tag_id" json:"tag_id"`
	Location  string         `db:"location" json:"location"`
	Latitude  *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude *float64       `db:"longitude" json:"longitude,omitempty"`
	NFCConfig NFCConfig      `db:"nfc_config" json:"nfc_config"`
	QRConfig  QRConfig       `db:"qr_config" json:"qr_config"`
	Status    string         `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// HasScanType reports membership in the checkpoint's scan type set.
func (c *Checkpoint) HasScanType(t ScanType) bool {
	for _, raw := range c.ScanTypes {
		if ScanType(raw) == t {
			return true
		}
	}
	return false
}

// CheckpointDisplay is the public display payload for a checkpoint: the
// current (possibly rotating) QR payload plus a countdown to the next
// rotation. Addressed by checkpoint id alone; no auth token.
type CheckpointDisplay struct {
	CheckpointID       string `json:"checkpoint_id"`
	CheckpointName     string `json:"checkpoint_name"`
	ZoneName           string `json:"zone_name"`
	Location           string `json:"location"`
	Dynamic            bool   `json:"dynamic"`
	RotateEveryMinutes int    `json:"rotate_every_minutes,omitempty"`
	Slot               int64  `json:"slot,omitempty"`
	SecondsUntilRotate int    `json:"seconds_until_rotate,omitempty"`
	Payload            string `json:"payload"`
	ImageURL           string `json:"image_url"`
}

func jsonValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func scanJSON(src, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
