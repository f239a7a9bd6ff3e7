package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CustomerInfo данные покупателя от платформы заказов.
// Известные поля типизированы, остальные ключи сохраняются как есть,
// чтобы вернуть платформе тот же объект.
type CustomerInfo struct {
	PlatformUserID string
	DisplayName    string

	extra map[string]json.RawMessage
}

const (
	customerUserIDKey = "user_id"
	customerNameKey   = "name"
)

func (c CustomerInfo) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.extra)+2)
	for k, v := range c.extra {
		out[k] = v
	}
	if c.PlatformUserID != "" {
		raw, err := json.Marshal(c.PlatformUserID)
		if err != nil {
			return nil, err
		}
		out[customerUserIDKey] = raw
	}
	if c.DisplayName != "" {
		raw, err := json.Marshal(c.DisplayName)
		if err != nil {
			return nil, err
		}
		out[customerNameKey] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON принимает объект или массив объектов (берется первый),
// user_id может прийти строкой или числом.
func (c *CustomerInfo) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = CustomerInfo{}
		return nil
	}

	if data[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("customer info list: %w", err)
		}
		if len(list) == 0 {
			*c = CustomerInfo{}
			return nil
		}
		return c.UnmarshalJSON(list[0])
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("customer info: %w", err)
	}

	info := CustomerInfo{}
	if raw, ok := fields[customerUserIDKey]; ok {
		id, err := decodeID(raw)
		if err != nil {
			return fmt.Errorf("customer info user_id: %w", err)
		}
		info.PlatformUserID = id
		delete(fields, customerUserIDKey)
	}
	if raw, ok := fields[customerNameKey]; ok {
		if err := json.Unmarshal(raw, &info.DisplayName); err != nil {
			return fmt.Errorf("customer info name: %w", err)
		}
		delete(fields, customerNameKey)
	}
	if len(fields) > 0 {
		info.extra = fields
	}

	*c = info
	return nil
}

// Extra возвращает непрозрачное поле, которое пришло от платформы.
func (c CustomerInfo) Extra(key string) (json.RawMessage, bool) {
	v, ok := c.extra[key]
	return v, ok
}

func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", err
	}
	return n.String(), nil
}
