package courier

import "lastmile/internal/pkg/errs"

// Transport is how the courier moves around.
type Transport struct {
	name string
}

var (
	TransportWalk = Transport{name: "walk"}
	TransportBike = Transport{name: "bike"}
	TransportCar  = Transport{name: "car"}
)

// TransportFromString parses a transport from its wire representation.
func TransportFromString(name string) (Transport, error) {
	switch name {
	case TransportWalk.name:
		return TransportWalk, nil
	case TransportBike.name:
		return TransportBike, nil
	case TransportCar.name:
		return TransportCar, nil
	default:
		return Transport{}, errs.NewValueIsInvalidError("transport")
	}
}

// Validate rejects the zero value.
func (t Transport) Validate() error {
	if t.name == "" {
		return errs.NewValueIsRequiredError("transport")
	}
	return nil
}

// String returns the wire representation of the transport.
func (t Transport) String() string {
	return t.name
}
