package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the lifecycle stage of a purchase or sales order
type OrderStatus int

const (
	OrderStatusCreated   OrderStatus = 0
	OrderStatusSubmitted OrderStatus = 1
	OrderStatusApproved  OrderStatus = 2
	OrderStatusReturned  OrderStatus = 3
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCreated:
		return "CREATED"
	case OrderStatusSubmitted:
		return "SUBMITTED"
	case OrderStatusApproved:
		return "APPROVED"
	case OrderStatusReturned:
		return "RETURNED"
	default:
		return "UNKNOWN"
	}
}

// IsValid reports whether the value is one of the defined statuses
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusCreated && s <= OrderStatusReturned
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "CREATED":
		*s = OrderStatusCreated
	case "SUBMITTED":
		*s = OrderStatusSubmitted
	case "APPROVED":
		*s = OrderStatusApproved
	case "RETURNED":
		*s = OrderStatusReturned
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusCreated
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
