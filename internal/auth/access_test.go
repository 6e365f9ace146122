package auth

import "testing"

func TestPagesForManager(t *testing.T) {
	pages := PagesFor(RoleManager)
	want := []Page{
		PageHome, PageDashboard, PageRooms, PageReservations,
		PageGuests, PageRoomTypes, PageCheckInOut, PageHousekeeping,
	}
	if len(pages) != len(want) {
		t.Fatalf("expected %d pages, got %d", len(want), len(pages))
	}
	for i, p := range want {
		if pages[i] != p {
			t.Fatalf("expected page %s at %d, got %s", p, i, pages[i])
		}
	}
}

func TestReceptionistHasNoHousekeeping(t *testing.T) {
	if Allowed(RoleReceptionist, PageHousekeeping) {
		t.Fatalf("receptionist must not see housekeeping")
	}
	if !Allowed(RoleReceptionist, PageCheckInOut) {
		t.Fatalf("receptionist must see check-in/out")
	}
	if !Allowed(RoleReceptionist, PageGuests) {
		t.Fatalf("receptionist must see guest management")
	}
}

func TestHousekeeperIsRestricted(t *testing.T) {
	for _, allowed := range []Page{PageRooms, PageReservations, PageHousekeeping} {
		if !Allowed(RoleHousekeeper, allowed) {
			t.Fatalf("housekeeper must see %s", allowed)
		}
	}
	for _, denied := range []Page{PageGuests, PageRoomTypes, PageDashboard} {
		if Allowed(RoleHousekeeper, denied) {
			t.Fatalf("housekeeper must not see %s", denied)
		}
	}
}

func TestUnknownRole(t *testing.T) {
	if ValidRole(0) || ValidRole(4) {
		t.Fatalf("expected roles outside 1..3 to be invalid")
	}
	if pages := PagesFor(4); pages != nil {
		t.Fatalf("expected no pages for unknown role, got %v", pages)
	}
	if Allowed(0, PageRooms) {
		t.Fatalf("unknown role must not be allowed anywhere")
	}
}

func TestPagesForReturnsCopy(t *testing.T) {
	pages := PagesFor(RoleManager)
	pages[0] = Page("mutated")
	if PagesFor(RoleManager)[0] != PageHome {
		t.Fatalf("PagesFor must not expose internal state")
	}
}
