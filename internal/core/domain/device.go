package domain

import "time"

type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
	DeviceStatusWorking DeviceStatus = "working"
	DeviceStatusError   DeviceStatus = "error"
)

const DefaultMaxUsageMinutes = 120

type Device struct {
	ID         uint64
	MerchantID uint64
	// DevID is the identifier the device gateway knows this unit by.
	DevID string
	Name  string

	PricePerMinute  int64
	MinAmount       int64
	MaxUsageMinutes int

	Status    DeviceStatus
	Signal    int
	Battery   int
	ErrorCode string

	TotalUses    int64
	TotalMinutes int64
	TotalRevenue int64

	UpdatedAt time.Time
}

type DeviceCommandType string

const (
	DeviceCommandStart  DeviceCommandType = "start"
	DeviceCommandStop   DeviceCommandType = "stop"
	DeviceCommandPause  DeviceCommandType = "pause"
	DeviceCommandResume DeviceCommandType = "resume"
)

type DeviceCommand struct {
	DevID           string
	Command         DeviceCommandType
	DurationMinutes int
	Parameters      map[string]string
}

// DeviceReport is an inbound status report from the device gateway.
type DeviceReport struct {
	DevID        string
	Status       DeviceStatus
	Signal       int
	Battery      int
	Temperature  float64
	Pressure     float64
	WorkTime     int
	ErrorCode    string
	ErrorMessage string
	Location     string
	Timestamp    time.Time
}
