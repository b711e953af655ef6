package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"fluiddiary/internal/domain/diary"
)

// Fingerprint is an order-independent digest of a snapshot's content. It is
// a change-detection optimization, not a cryptographic commitment.
type Fingerprint string

// ComputeFingerprint digests {profile, days, entries}. Collections are
// sorted by identifier first, so two snapshots with the same content but
// different iteration order always fingerprint identically. UpdatedAt is
// deliberately excluded: it changes on every snapshot build.
func ComputeFingerprint(snap diary.Snapshot) Fingerprint {
	days := make([]diary.Day, len(snap.Days))
	copy(days, snap.Days)
	sort.Slice(days, func(i, j int) bool { return days[i].ID < days[j].ID })

	entries := make([]diary.Entry, len(snap.Entries))
	copy(entries, snap.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	payload := struct {
		Profile *diary.Profile `json:"profile"`
		Days    []diary.Day    `json:"days"`
		Entries []diary.Entry  `json:"entries"`
	}{snap.Profile, days, entries}

	// Marshal of plain structs with no cycles cannot fail.
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// ChangedSince reports whether snap differs from the content last captured
// in last. An empty last always counts as changed.
func ChangedSince(last Fingerprint, snap diary.Snapshot) bool {
	return ComputeFingerprint(snap) != last
}
