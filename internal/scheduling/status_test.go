package scheduling

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusApproved, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusCancelled, false},
		{StatusCancelled, StatusApproved, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusPending, StatusPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestTerminal(t *testing.T) {
	if StatusPending.Terminal() || StatusApproved.Terminal() {
		t.Error("live statuses must not be terminal")
	}
	if !StatusRejected.Terminal() || !StatusCancelled.Terminal() {
		t.Error("rejected and cancelled must be terminal")
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"", RolePatient, true},
		{"patient", RolePatient, true},
		{"doctor", RoleDoctor, true},
		{"admin", RoleAdmin, true},
		{"  Doctor ", RoleDoctor, true},
		{"superuser", "", false},
	}
	for _, c := range cases {
		got, err := ParseRole(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("ParseRole(%q) = %v, %v; want %v", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseRole(%q): expected error", c.in)
		}
	}
}
