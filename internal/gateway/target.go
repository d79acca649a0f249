package gateway

// Target is a pre-registered partner integration. The set is closed.
type Target int

const (
	CPFLookup Target = iota + 1
	OfferLookup
)

type route struct {
	name      string
	configKey string
	missing   string
}

var routes = map[Target]route{
	CPFLookup: {
		name:      "cpf_lookup",
		configKey: "API_CONSULTA_CPF",
		missing:   "API para consulta de CPF não configurada. Verifique as configurações e tente novamente.",
	},
	OfferLookup: {
		name:      "offer_lookup",
		configKey: "API_CONSULTA_OFERTA",
		missing:   "API para consulta de ofertas não configurada. Verifique as configurações e tente novamente.",
	},
}

// Targets lists every registered target.
func Targets() []Target {
	return []Target{CPFLookup, OfferLookup}
}

func (t Target) String() string {
	if r, ok := routes[t]; ok {
		return r.name
	}
	return "unknown"
}

// ConfigKey is the configuration key holding the target's address.
func (t Target) ConfigKey() string { return routes[t].configKey }

// MissingMessage is reported when the target has no address configured.
func (t Target) MissingMessage() string { return routes[t].missing }

func (t Target) registered() bool {
	_, ok := routes[t]
	return ok
}

// Destination is either a Target or an Address.
type Destination interface {
	destination()
}

func (Target) destination() {}

// Address is a raw, unregistered destination URL.
type Address string

func (Address) destination() {}
