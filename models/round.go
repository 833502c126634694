package models

type PairingSystem string

const (
	PairingRoundRobin PairingSystem = "ROUND_ROBIN"
	PairingSwiss      PairingSystem = "SWISS"
	PairingKOTH       PairingSystem = "KOTH"
	PairingRandom     PairingSystem = "RANDOM"
	PairingManual     PairingSystem = "MANUAL"
)

// Round is one pairing cycle. RoundNo is one-based and contiguous.
type Round struct {
	ID            int           `json:"id"`
	RoundNo       int           `json:"round_no"`
	Name          string        `json:"name,omitempty"`
	Paired        bool          `json:"paired"`
	PairingSystem PairingSystem `json:"pairing_system,omitempty"`
	BasedOn       *int          `json:"based_on,omitempty"`
	Repeats       int           `json:"repeats"`
	SpreadCap     *int          `json:"spread_cap,omitempty"`
}

// RoundIndex converts a one-based round number, as used on the wire and in
// URLs, into the zero-based index of Rounds and Results.
func RoundIndex(roundNo int) int {
	return roundNo - 1
}

// RoundNumber is the inverse of RoundIndex.
func RoundNumber(index int) int {
	return index + 1
}
