package entity

import (
	"time"
)

// User is the profile slice the offline cache denormalizes. Users are
// keyed by CPF in the store.
type User struct {
	CPF      string `firestore:"cpf" json:"cpf"`
	FullName string `firestore:"nomeCompleto" json:"nomeCompleto"`
	Email    string `firestore:"email" json:"email"`
}

// Event is the event metadata read from eventos/{eventId}. Read-only
// from this service's perspective.
type Event struct {
	ID    string `firestore:"id" json:"id"`
	Name  string `firestore:"nomeEvento" json:"nomeEvento"`
	Date  string `firestore:"dataEvento,omitempty" json:"dataEvento,omitempty"`
	Venue string `firestore:"local,omitempty" json:"local,omitempty"`
	Type  string `firestore:"tipo,omitempty" json:"tipo,omitempty"`
}

// PurchasedTicket is one entry of a user's purchase records, keyed by
// its unique token.
type PurchasedTicket struct {
	Token   string `firestore:"token" json:"token"`
	EventID string `firestore:"eventid" json:"eventid"`
	Type    string `firestore:"tipo" json:"tipo"`
}

// OfflineTicket is the denormalized snapshot record written to the
// local cache at download time. Staleness is expected: the offline
// viewer renders from these records only and never merges live data.
type OfflineTicket struct {
	CPF       string `json:"cpf"`
	FullName  string `json:"nomeCompleto"`
	Email     string `json:"email"`
	EventID   string `json:"eventId"`
	EventName string `json:"nomeEvento"`
	EventDate string `json:"dataEvento,omitempty"`
	Venue     string `json:"local,omitempty"`
	Type      string `json:"tipo"`
	Token     string `json:"token"`
}

// OfflineEventGroup is the derived per-event view the offline screen
// renders. Recomputed on every load, never persisted.
type OfflineEventGroup struct {
	EventID   string          `json:"eventId"`
	EventName string          `json:"nomeEvento"`
	EventDate string          `json:"dataEvento,omitempty"`
	Venue     string          `json:"local,omitempty"`
	Tickets   []OfflineTicket `json:"tickets"`
}

// DownloadSummary is returned after a successful offline download.
type DownloadSummary struct {
	DownloadID   string    `json:"downloadId"`
	TotalTickets int       `json:"totalTickets"`
	Events       int       `json:"events"`
	DownloadDate time.Time `json:"downloadDate"`
}
