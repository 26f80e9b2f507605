package access

import (
	"reflect"
	"testing"

	"viacampo/models"
)

func TestToProfile_PriorityOrder(t *testing.T) {
	cases := []struct {
		perms []string
		want  Profile
	}{
		{[]string{"admin"}, ProfileAdmin},
		{[]string{"admin", "all"}, ProfileAdmin},
		{[]string{"all", "history", "tray"}, ProfileAll},
		{[]string{"tray", "history"}, ProfileTrayHistory},
		{[]string{"history"}, ProfileTrayHistory},
		{[]string{"tray"}, ProfileTray},
		{nil, ProfileTray},
	}
	for _, tc := range cases {
		if got := ToProfile(tc.perms); got != tc.want {
			t.Errorf("ToProfile(%v) = %v, want %v", tc.perms, got, tc.want)
		}
	}
}

func TestFromProfile_StoredSets(t *testing.T) {
	cases := []struct {
		profile Profile
		want    []string
	}{
		{ProfileAdmin, []string{"admin", "all"}},
		{ProfileAll, []string{"all"}},
		{ProfileTrayHistory, []string{"tray", "history"}},
		{ProfileTray, []string{"tray"}},
	}
	for _, tc := range cases {
		if got := FromProfile(tc.profile); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("FromProfile(%v) = %v, want %v", tc.profile, got, tc.want)
		}
	}
}

func TestProfileRoundTrip(t *testing.T) {
	for _, p := range Profiles {
		perms := FromProfile(p)
		again := FromProfile(ToProfile(perms))
		if !reflect.DeepEqual(again, perms) {
			t.Errorf("round trip for %v: FromProfile(ToProfile(%v)) = %v", p, perms, again)
		}
	}
}

func TestCan(t *testing.T) {
	cases := []struct {
		name       string
		user       models.AppUser
		capability string
		want       bool
	}{
		{"inactive user denied everything", models.AppUser{Active: false, Permissions: []string{"admin", "all"}}, "tray", false},
		{"admin reaches admin screen", models.AppUser{Active: true, Permissions: []string{"admin", "all"}}, "admin", true},
		{"admin reaches tray", models.AppUser{Active: true, Permissions: []string{"admin", "all"}}, "tray", true},
		{"all reaches history", models.AppUser{Active: true, Permissions: []string{"all"}}, "history", true},
		{"all does not reach admin", models.AppUser{Active: true, Permissions: []string{"all"}}, "admin", false},
		{"tray-only denied history", models.AppUser{Active: true, Permissions: []string{"tray"}}, "history", false},
		{"tray-only reaches tray", models.AppUser{Active: true, Permissions: []string{"tray"}}, "tray", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Can(tc.user, tc.capability); got != tc.want {
				t.Errorf("Can(%v, %q) = %v, want %v", tc.user.Permissions, tc.capability, got, tc.want)
			}
		})
	}
}

func TestValidProfile(t *testing.T) {
	for _, p := range Profiles {
		if !ValidProfile(p) {
			t.Errorf("ValidProfile(%v) = false", p)
		}
	}
	if ValidProfile(Profile("SUPERUSER")) {
		t.Error("ValidProfile accepted an unknown profile")
	}
}
