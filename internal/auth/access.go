package auth

// Role values are a closed set of three. They control which pages and menu
// entries a signed-in user sees; the check-in workflow itself never branches
// on role, it just sits behind the page gate.
const (
	RoleManager      = 1
	RoleReceptionist = 2
	RoleHousekeeper  = 3
)

type Page string

const (
	PageHome         Page = "home"
	PageDashboard    Page = "dashboard"
	PageRooms        Page = "rooms"
	PageReservations Page = "reservations"
	PageGuests       Page = "guestmanagement"
	PageRoomTypes    Page = "room-types"
	PageCheckInOut   Page = "check-in-out"
	PageHousekeeping Page = "housekeeping"
)

// pagesByRole is the single place role capabilities are declared. Adding a
// role means adding one row here, not hunting down scattered conditionals.
var pagesByRole = map[int][]Page{
	RoleManager: {
		PageHome, PageDashboard, PageRooms, PageReservations,
		PageGuests, PageRoomTypes, PageCheckInOut, PageHousekeeping,
	},
	RoleReceptionist: {
		PageHome, PageDashboard, PageRooms, PageReservations,
		PageGuests, PageRoomTypes, PageCheckInOut,
	},
	RoleHousekeeper: {
		PageHome, PageRooms, PageReservations, PageHousekeeping,
	},
}

// PublicPages are reachable without a token.
var PublicPages = []Page{PageHome, PageHousekeeping}

func ValidRole(role int) bool {
	_, ok := pagesByRole[role]
	return ok
}

// PagesFor returns the pages a role may open. Unknown roles get nothing.
func PagesFor(role int) []Page {
	pages, ok := pagesByRole[role]
	if !ok {
		return nil
	}
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

func Allowed(role int, page Page) bool {
	for _, p := range pagesByRole[role] {
		if p == page {
			return true
		}
	}
	return false
}
