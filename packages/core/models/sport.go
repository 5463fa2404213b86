package models

// The set of sports is closed: ratings, matches and challenges all key on
// these tags, so adding a sport is a code change, not a data change.
const (
	SportPingPong      = "pingpong"
	SportPool          = "pool"
	SportFoosball      = "foosball"
	SportBasketball1v1 = "basketball1v1"
	SportTennis        = "tennis"
	SportBeerPong      = "beerpong"
)

// Sports lists every playable sport tag.
var Sports = []string{
	SportPingPong,
	SportPool,
	SportFoosball,
	SportBasketball1v1,
	SportTennis,
	SportBeerPong,
}

// IsValidSport reports whether tag belongs to the closed sport set.
func IsValidSport(tag string) bool {
	for _, s := range Sports {
		if s == tag {
			return true
		}
	}
	return false
}
