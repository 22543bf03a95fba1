package model

// AmenityID はアメニティカタログの識別子。
// カタログは固定の閉集合で、ユーザーによる拡張はできない。
type AmenityID string

// アメニティカタログ
const (
	AmenityWiFi5G       AmenityID = "wifi_5g"
	AmenityCoffee       AmenityID = "coffee_machine"
	AmenityStandingDesk AmenityID = "standing_desk"
	AmenityDualMonitors AmenityID = "dual_monitors"
	AmenityQuietSpace   AmenityID = "quiet_space"
	AmenityParking      AmenityID = "parking"
)

// AmenityCatalog はカタログの全アメニティとその表示ラベル。
// 表示順を保つためマップではなくスライスで定義する。
var AmenityCatalog = []struct {
	ID    AmenityID
	Label string
}{
	{AmenityWiFi5G, "5G WiFi"},
	{AmenityCoffee, "Coffee Machine"},
	{AmenityStandingDesk, "Standing Desk"},
	{AmenityDualMonitors, "Dual Monitors"},
	{AmenityQuietSpace, "Quiet Space"},
	{AmenityParking, "Parking"},
}

// ValidAmenityID はidがカタログに含まれるかを返す。
func ValidAmenityID(id AmenityID) bool {
	for _, a := range AmenityCatalog {
		if a.ID == id {
			return true
		}
	}
	return false
}
