package sync

import (
	"encoding/json"
	"fmt"
	"sort"

	"fluiddiary/internal/domain/diary"
)

// MergeOutcome is the result of reconciling a remote snapshot against local
// state. When Echo is true the notification was this replica's own prior
// upload reflected back and the merge fields are zero.
type MergeOutcome struct {
	Echo bool

	// Snapshot and Fingerprint describe the merged result.
	Snapshot    diary.Snapshot
	Fingerprint Fingerprint

	// RemoteFingerprint is the digest of the snapshot as received. When it
	// differs from Fingerprint, the local replica holds records the remote
	// document lacks and the union still needs to be pushed.
	RemoteFingerprint Fingerprint
}

// MergeDays unions two day collections by identifier. On a collision the
// remote record wins unconditionally. Local records whose identifiers the
// remote set omits are retained: deletions are not tracked, so the result is
// always a union, never a replacement.
func MergeDays(local, remote []diary.Day) []diary.Day {
	byID := make(map[string]diary.Day, len(local)+len(remote))
	for _, d := range local {
		byID[d.ID] = d
	}
	for _, d := range remote {
		byID[d.ID] = d
	}
	merged := make([]diary.Day, 0, len(byID))
	for _, d := range byID {
		merged = append(merged, d)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged
}

// MergeEntries unions two entry collections by identifier; same policy as
// MergeDays.
func MergeEntries(local, remote []diary.Entry) []diary.Entry {
	byID := make(map[string]diary.Entry, len(local)+len(remote))
	for _, e := range local {
		byID[e.ID] = e
	}
	for _, e := range remote {
		byID[e.ID] = e
	}
	merged := make([]diary.Entry, 0, len(byID))
	for _, e := range byID {
		merged = append(merged, e)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged
}

// ApplyRemote reconciles an incoming remote snapshot with local state.
//
// If the remote content fingerprints to lastUploaded, the notification is an
// echo of this replica's own last upload and must be discarded without
// touching local state. Otherwise days and entries are merged per the union
// rules, and the profile is replaced wholesale only when the remote carries
// one — an absent remote profile never clears an existing local one.
//
// The returned fingerprint is of the merged snapshot; the caller must record
// it as the new last-known fingerprint so the next upload cycle does not
// push back data that just arrived.
func ApplyRemote(local, remote diary.Snapshot, lastUploaded Fingerprint) MergeOutcome {
	remoteFP := ComputeFingerprint(remote)
	if remoteFP == lastUploaded {
		return MergeOutcome{Echo: true, RemoteFingerprint: remoteFP}
	}

	merged := diary.Snapshot{
		Profile:   local.Profile,
		Days:      MergeDays(local.Days, remote.Days),
		Entries:   MergeEntries(local.Entries, remote.Entries),
		UpdatedAt: remote.UpdatedAt,
	}
	if remote.Profile != nil {
		p := *remote.Profile
		merged.Profile = &p
	}

	return MergeOutcome{
		Snapshot:          merged,
		Fingerprint:       ComputeFingerprint(merged),
		RemoteFingerprint: remoteFP,
	}
}

// DecodeSnapshot parses and shape-checks a raw remote document. Anything
// unusable comes back as ErrMalformedSnapshot so callers can skip the merge
// without killing the subscription loop.
func DecodeSnapshot(data []byte) (diary.Snapshot, error) {
	var snap diary.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return diary.Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if err := snap.Validate(); err != nil {
		return diary.Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return snap, nil
}
