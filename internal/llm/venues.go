package llm

// Venue carries the static context injected into the system prompt when
// the user has selected an LA 2028 venue in their settings.
type Venue struct {
	ID      string
	Name    string
	Sport   string
	Context string
	Layout  string
}

var venues = []Venue{
	{
		ID:      "staples-center",
		Name:    "Crypto.com Arena",
		Sport:   "Basketball",
		Context: "Indoor arena in downtown LA hosting Olympic basketball.",
		Layout:  "Main entrance on Chick Hearn Court, concourses ring the bowl on levels 100 and 300, accessible seating on every level.",
	},
	{
		ID:      "la-coliseum",
		Name:    "LA Memorial Coliseum",
		Sport:   "Athletics",
		Context: "Historic open-air stadium hosting track and field events.",
		Layout:  "Peristyle entrance at the east end, tunnels numbered 1-28 around the rim, the torch sits above the peristyle arches.",
	},
	{
		ID:      "ucla",
		Name:    "UCLA Pauley Pavilion",
		Sport:   "Gymnastics",
		Context: "Campus arena in Westwood hosting artistic gymnastics.",
		Layout:  "Main doors face Bruin Walk, a single concourse loops the arena, equipment podium in the center of the floor.",
	},
	{
		ID:      "rose-bowl",
		Name:    "Rose Bowl Stadium",
		Sport:   "Soccer",
		Context: "Open-air stadium in Pasadena hosting Olympic soccer matches.",
		Layout:  "Gates lettered A through N around the bowl, field below street level, picnic areas outside the north gates.",
	},
	{
		ID:      "convention-center",
		Name:    "LA Convention Center",
		Sport:   "Fencing & Table Tennis",
		Context: "Downtown convention halls converted to competition pistes and tables.",
		Layout:  "South Hall and West Hall connected by a concourse bridge, competition halls are signposted by sport from the main lobby.",
	},
}

// VenueContext returns the venue table entry for the given id.
func VenueContext(id string) (Venue, bool) {
	for _, v := range venues {
		if v.ID == id {
			return v, true
		}
	}
	return Venue{}, false
}

// Venues lists the known venues in a stable order.
func Venues() []Venue {
	out := make([]Venue, len(venues))
	copy(out, venues)
	return out
}
