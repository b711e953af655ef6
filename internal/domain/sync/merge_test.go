package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluiddiary/internal/domain/diary"
)

func entry(id string, voidMl int) diary.Entry {
	return diary.Entry{ID: id, DayID: "d1", Type: diary.EntryVoid, VoidMl: voidMl}
}

func TestMergeEntriesDisjointUnion(t *testing.T) {
	local := []diary.Entry{entry("e1", 100), entry("e2", 200)}
	remote := []diary.Entry{entry("e3", 300)}

	merged := MergeEntries(local, remote)
	require.Len(t, merged, 3)
	assert.ElementsMatch(t, append(local, remote...), merged)
}

func TestMergeEntriesRemoteWinsOnCollision(t *testing.T) {
	local := []diary.Entry{entry("e1", 100)}
	remote := []diary.Entry{entry("e1", 999)}

	merged := MergeEntries(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, 999, merged[0].VoidMl)
}

func TestMergeNoTombstones(t *testing.T) {
	// Remote omits e1 entirely; the local record survives. Deletions never
	// propagate across devices under this design.
	local := []diary.Entry{entry("e1", 100)}
	remote := []diary.Entry{entry("e2", 200)}

	merged := MergeEntries(local, remote)
	require.Len(t, merged, 2)

	ids := []string{merged[0].ID, merged[1].ID}
	assert.Contains(t, ids, "e1")
}

func TestMergeDays(t *testing.T) {
	local := []diary.Day{{ID: "d1", DayNumber: 1, Date: "2026-08-01"}}
	remote := []diary.Day{
		{ID: "d1", DayNumber: 1, Date: "2026-08-02"}, // collision: remote wins
		{ID: "d2", DayNumber: 2, Date: "2026-08-03"},
	}

	merged := MergeDays(local, remote)
	require.Len(t, merged, 2)
	for _, d := range merged {
		if d.ID == "d1" {
			assert.Equal(t, "2026-08-02", d.Date)
		}
	}
}

func TestApplyRemoteEcho(t *testing.T) {
	local := diary.Snapshot{Entries: []diary.Entry{entry("e1", 100)}}
	remote := diary.Snapshot{Entries: []diary.Entry{entry("e1", 100)}}

	outcome := ApplyRemote(local, remote, ComputeFingerprint(remote))
	assert.True(t, outcome.Echo)
	assert.Empty(t, outcome.Fingerprint)
}

func TestApplyRemoteMerge(t *testing.T) {
	local := diary.Snapshot{Entries: []diary.Entry{entry("e1", 100)}}
	remote := diary.Snapshot{Entries: []diary.Entry{entry("e2", 200)}}

	outcome := ApplyRemote(local, remote, "some-other-fingerprint")
	require.False(t, outcome.Echo)
	assert.Len(t, outcome.Snapshot.Entries, 2)
	assert.Equal(t, ComputeFingerprint(outcome.Snapshot), outcome.Fingerprint)
	assert.Equal(t, ComputeFingerprint(remote), outcome.RemoteFingerprint)
	// The merge extended the remote document, so the fingerprints differ and
	// the caller knows the union still needs pushing.
	assert.NotEqual(t, outcome.Fingerprint, outcome.RemoteFingerprint)
}

func TestApplyRemoteProfile(t *testing.T) {
	localProfile := &diary.Profile{Sex: diary.SexMale, BirthYear: 1958}
	local := diary.Snapshot{Profile: localProfile}

	// Absent remote profile never clears the local one.
	outcome := ApplyRemote(local, diary.Snapshot{Entries: []diary.Entry{entry("e1", 1)}}, "")
	require.False(t, outcome.Echo)
	require.NotNil(t, outcome.Snapshot.Profile)
	assert.Equal(t, 1958, outcome.Snapshot.Profile.BirthYear)

	// Present remote profile replaces wholesale.
	remote := diary.Snapshot{Profile: &diary.Profile{Sex: diary.SexMale, BirthYear: 1960}}
	outcome = ApplyRemote(local, remote, "")
	require.NotNil(t, outcome.Snapshot.Profile)
	assert.Equal(t, 1960, outcome.Snapshot.Profile.BirthYear)
}

func TestApplyRemoteStaleRemoteStillWins(t *testing.T) {
	// Remote-wins is by transport order, not embedded timestamps: a stale
	// remote record silently overwrites a newer unsynced local edit. That is
	// the documented consistency model.
	newer := entry("e1", 500)
	local := diary.Snapshot{Entries: []diary.Entry{newer}}
	stale := entry("e1", 100)
	remote := diary.Snapshot{Entries: []diary.Entry{stale}}

	outcome := ApplyRemote(local, remote, "")
	require.Len(t, outcome.Snapshot.Entries, 1)
	assert.Equal(t, 100, outcome.Snapshot.Entries[0].VoidMl)
}

func TestDecodeSnapshot(t *testing.T) {
	good := []byte(`{"profile":null,"days":[{"id":"d1","date":"2026-08-01","day_number":1,"is_typical_day":true}],"entries":[],"updated_at":"2026-08-01T10:00:00Z"}`)
	snap, err := DecodeSnapshot(good)
	require.NoError(t, err)
	assert.Len(t, snap.Days, 1)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "not json", data: []byte("nope")},
		{name: "wrong shape", data: []byte(`{"days":"not-a-list"}`)},
		{name: "day missing id", data: []byte(`{"days":[{"day_number":1}]}`)},
		{name: "entry missing day", data: []byte(`{"entries":[{"id":"e1","type":"void"}]}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot(tt.data)
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
		})
	}
}
