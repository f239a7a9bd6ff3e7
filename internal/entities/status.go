package entities

type DeliveryStatus string

const (
	StatusCreated          DeliveryStatus = "created"
	StatusWaitingForDriver DeliveryStatus = "waiting_for_driver"
	StatusDriverAssigned   DeliveryStatus = "driver_assign"
	StatusOrderPickedUp    DeliveryStatus = "order_picked_up"
	StatusOnTheWay         DeliveryStatus = "on_the_way"
	StatusArrived          DeliveryStatus = "arrived"
	StatusDeliverySuccess  DeliveryStatus = "delivery_success"
	StatusDeliveryFailed   DeliveryStatus = "delivery_failed"
	StatusDriverRejected   DeliveryStatus = "driver_rejected"
	StatusCanceled         DeliveryStatus = "canceled"
)

func (s DeliveryStatus) String() string {
	return string(s)
}

// AllowedTransitions единственная таблица переходов статусов доставки.
// В driver_assign попадают только через claim.
var AllowedTransitions = map[DeliveryStatus][]DeliveryStatus{
	StatusCreated: {
		StatusWaitingForDriver,
		StatusCanceled,
	},
	StatusWaitingForDriver: {
		StatusDriverAssigned,
		StatusDeliveryFailed,
		StatusCanceled,
		StatusDriverRejected,
	},
	StatusDriverAssigned: {
		StatusOrderPickedUp,
		StatusDeliveryFailed,
		StatusCanceled,
		StatusDriverRejected,
	},
	StatusOrderPickedUp: {
		StatusOnTheWay,
		StatusDeliveryFailed,
		StatusCanceled,
		StatusDriverRejected,
	},
	StatusOnTheWay: {
		StatusArrived,
		StatusDeliveryFailed,
		StatusCanceled,
		StatusDriverRejected,
	},
	StatusArrived: {
		StatusDeliverySuccess,
		StatusDeliveryFailed,
		StatusCanceled,
		StatusDriverRejected,
	},
	StatusDeliverySuccess: {},
	StatusDeliveryFailed:  {},
	StatusDriverRejected:  {},
	StatusCanceled:        {},
}

func CanTransition(from, to DeliveryStatus) bool {
	for _, allowed := range AllowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s DeliveryStatus) IsValid() bool {
	_, ok := AllowedTransitions[s]
	return ok
}

func (s DeliveryStatus) IsTerminal() bool {
	switch s {
	case StatusDeliverySuccess, StatusDeliveryFailed, StatusDriverRejected, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsAssignedState статусы, в которых у доставки может быть закрепленный водитель.
func (s DeliveryStatus) IsAssignedState() bool {
	switch s {
	case StatusDriverAssigned, StatusOrderPickedUp, StatusOnTheWay,
		StatusArrived, StatusDeliverySuccess, StatusDeliveryFailed:
		return true
	default:
		return false
	}
}

// ActiveDriverStatuses доставка уже у водителя, но еще не закрыта.
var ActiveDriverStatuses = []DeliveryStatus{
	StatusDriverAssigned,
	StatusOrderPickedUp,
	StatusOnTheWay,
	StatusArrived,
}

var ClosedDriverStatuses = []DeliveryStatus{
	StatusDeliverySuccess,
	StatusDeliveryFailed,
	StatusDriverRejected,
	StatusCanceled,
}
