package entity

// Record is implemented by every entity kind managed by the back office.
type Record interface {
	RecordID() int64
	DisplayTitle() string
}

type Kind string

const (
	KindClient         Kind = "clients"
	KindEquipment      Kind = "equipment"
	KindVehicle        Kind = "vehicles"
	KindContract       Kind = "contracts"
	KindPersonnel      Kind = "personnel"
	KindServiceRequest Kind = "service-requests"
	KindRepair         Kind = "repairs"
	KindRMA            Kind = "rma"
	KindSupplier       Kind = "suppliers"
	KindProject        Kind = "projects"
)

// Kinds lists every kind in the order pages are shown.
var Kinds = []Kind{
	KindEquipment,
	KindServiceRequest,
	KindRepair,
	KindRMA,
	KindClient,
	KindContract,
	KindVehicle,
	KindPersonnel,
	KindSupplier,
	KindProject,
}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindClient, KindEquipment, KindVehicle, KindContract, KindPersonnel,
		KindServiceRequest, KindRepair, KindRMA, KindSupplier, KindProject:
		return true
	default:
		return false
	}
}

// Title is the human readable page title of the kind.
func (k Kind) Title() string {
	switch k {
	case KindClient:
		return "Clients"
	case KindEquipment:
		return "Equipements"
	case KindVehicle:
		return "Véhicules"
	case KindContract:
		return "Contrats"
	case KindPersonnel:
		return "Personnel"
	case KindServiceRequest:
		return "Demandes SAV"
	case KindRepair:
		return "Réparations"
	case KindRMA:
		return "RMA"
	case KindSupplier:
		return "Fournisseurs"
	case KindProject:
		return "Ventes & Installations"
	default:
		return string(k)
	}
}

const (
	DefaultListLimit uint64 = 500
	MaxListLimit     uint64 = 5000
)

type ListFilter struct {
	Search   string
	Status   string
	ClientID *int64
	Page     uint64
	Limit    uint64
}

// Normalize applies default paging.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit == 0 {
		f.Limit = DefaultListLimit
	}

	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}

	if f.Page == 0 {
		f.Page = 1
	}

	return f
}
