package utils

import (
	"context"
	"errors"
	"testing"
)

func okProbe(ctx context.Context) error   { return nil }
func downProbe(ctx context.Context) error { return errors.New("unreachable") }

func TestSnapshotHealthAllUp(t *testing.T) {
	snap := snapshotHealth(context.Background(), okProbe, okProbe, []probe{okProbe, okProbe})

	if !snap.Firestore {
		t.Fatal("firestore reported down")
	}
	if !snap.Mongo {
		t.Fatal("mongo reported down")
	}
	if len(snap.Redis) != 2 || !snap.Redis[0] || !snap.Redis[1] {
		t.Fatalf("redis health = %v", snap.Redis)
	}
	if snap.CheckedAt.IsZero() {
		t.Fatal("snapshot missing timestamp")
	}
}

func TestSnapshotHealthFirestoreDown(t *testing.T) {
	snap := snapshotHealth(context.Background(), downProbe, okProbe, []probe{okProbe})

	if snap.Firestore {
		t.Fatal("firestore reported up despite failing probe")
	}
	if !snap.Mongo {
		t.Fatal("mongo flipped by firestore failure")
	}
}

func TestSnapshotHealthMixedRedis(t *testing.T) {
	snap := snapshotHealth(context.Background(), okProbe, downProbe, []probe{okProbe, downProbe})

	if snap.Mongo {
		t.Fatal("mongo reported up despite failing probe")
	}
	if len(snap.Redis) != 2 || !snap.Redis[0] || snap.Redis[1] {
		t.Fatalf("redis health = %v", snap.Redis)
	}
}
