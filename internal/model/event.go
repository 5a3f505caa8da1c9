package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 事件状态只会沿 future -> present -> past 单向推进
const (
	StatusFuture  = "future"
	StatusPresent = "present"
	StatusPast    = "past"
)

// DefaultEventPictureURL 创建事件时未提供图片的默认占位图
const DefaultEventPictureURL = "https://blogmedia.evbstatic.com/wp-content/uploads/wpmulti/sites/3" +
	"/2016/05/10105129/discount-codes-reach-more-people-eventbrite.png"

// GeoPoint 是 GeoJSON 格式的坐标点，坐标顺序为 [经度, 纬度]
type GeoPoint struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint 根据纬度和经度构造 GeoPoint
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lon, lat}}
}

// Event 结构体表示事件模型
type Event struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"event_id"`
	EventName       string               `bson:"event_name" json:"event_name"`
	Status          string               `bson:"status" json:"event_status"`
	StartDatetime   time.Time            `bson:"start_datetime" json:"start_datetime"`
	EndDatetime     time.Time            `bson:"end_datetime" json:"end_datetime"`
	Latitude        float64              `bson:"latitude" json:"-"`
	Longitude       float64              `bson:"longitude" json:"-"`
	Location        GeoPoint             `bson:"location" json:"-"`
	EventPictureURL string               `bson:"event_picture_url" json:"event_picture_url"`
	Description     string               `bson:"description" json:"description"`
	Private         bool                 `bson:"private" json:"private"`
	Organiser       string               `bson:"organiser" json:"-"`
	GuestList       []string             `bson:"guest_list" json:"-"`
	Attendees       []string             `bson:"attendees" json:"-"`
	ShowedUp        []string             `bson:"showed_up" json:"-"`
	Left            []string             `bson:"left" json:"-"`
	Posts           []primitive.ObjectID `bson:"posts" json:"-"`
}

// EventInput 包含创建事件所需的全部字段，日期为带时区的 ISO8601 字符串
type EventInput struct {
	EventName       string    `json:"event_name"`
	StartDatetime   string    `json:"start_datetime"`
	EndDatetime     string    `json:"end_datetime"`
	Location        []float64 `json:"location"`
	EventPictureURL string    `json:"event_picture_url"`
	Description     string    `json:"description"`
	Private         *bool     `json:"private"`
	GuestList       []string  `json:"guest_list"`
}

// EventPatch 包含编辑事件时可能出现的字段，均为可选
type EventPatch struct {
	EventName       string    `json:"event_name"`
	StartDatetime   string    `json:"start_datetime"`
	EndDatetime     string    `json:"end_datetime"`
	Location        []float64 `json:"location"`
	EventPictureURL string    `json:"event_picture_url"`
	Description     string    `json:"description"`
	Private         *bool     `json:"private"`
}

// NameRange 是按名称搜索时使用的半开区间 [Min, Max)，Max 为空表示无上界
type NameRange struct {
	Min string
	Max string
}

// EventFilters 组合事件搜索的各个过滤条件，零值字段不参与过滤
type EventFilters struct {
	Name       *NameRange
	Boundaries *GeoBoundaries
	DayMin     time.Time
	DayMax     time.Time
}

// GeoBoundaries 表示地理搜索的包围盒。Wraps 为真时包围盒横跨对向子午线，
// 经度条件变为 lon >= MinLongitude 或 lon <= MaxLongitude。
type GeoBoundaries struct {
	MaxLatitude  float64
	MinLatitude  float64
	MaxLongitude float64
	MinLongitude float64
	Wraps        bool
}

// Contains 判断坐标是否落在包围盒内
func (b GeoBoundaries) Contains(lat, lon float64) bool {
	if lat > b.MaxLatitude || lat < b.MinLatitude {
		return false
	}
	if b.Wraps {
		return lon >= b.MinLongitude || lon <= b.MaxLongitude
	}
	return lon >= b.MinLongitude && lon <= b.MaxLongitude
}
