// Package collaborators implements the two external adapters the table
// engine and hub depend on only through their interface: the earnings
// ledger and the email allow-list. Both are additive bookkeeping,
// specified solely by the calls the core invokes on them.
package collaborators

import "context"

// EarningsRecord is one email's running totals.
type EarningsRecord struct {
	Email           string `json:"email"`
	Hands           int64  `json:"hands"`
	ChipsDelta      int64  `json:"chips_delta"`
	Hands6992       int64  `json:"hands_69_92"`
	ChipsDelta6992  int64  `json:"chips_delta_69_92"`
}

// EarningsUpdate is one additive increment applied by applyUpdates.
type EarningsUpdate struct {
	Email          string `json:"email"`
	Hands          int64  `json:"hands"`
	ChipsDelta     int64  `json:"chips_delta"`
	Hands6992      int64  `json:"hands_69_92"`
	ChipsDelta6992 int64  `json:"chips_delta_69_92"`
}

// EarningsStore is the persistent earnings ledger, keyed by email.
// applyUpdates is additive and atomic per call: every update in the
// batch either all lands or none does.
type EarningsStore interface {
	Get(ctx context.Context, email string) (EarningsRecord, error)
	ApplyUpdates(ctx context.Context, updates []EarningsUpdate) error
	Close() error
}

// AllowList is the email allow-list lookup. Emails are lowercased and
// trimmed before comparison or storage.
type AllowList interface {
	GetAllowedEmails(ctx context.Context) (map[string]struct{}, error)
	Close() error
}
