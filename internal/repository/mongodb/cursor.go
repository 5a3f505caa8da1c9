package mongodb

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 查询游标编码为不透明的 base64 字符串返回给客户端，
// 解码失败按第一页处理，与存储层收到坏游标时的行为一致

func encodeStringCursor(id string) string {
	return base64.URLEncoding.EncodeToString([]byte(id))
}

func decodeStringCursor(cursor string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func encodeIDCursor(id primitive.ObjectID) string {
	return base64.URLEncoding.EncodeToString([]byte(id.Hex()))
}

func decodeIDCursor(cursor string) (primitive.ObjectID, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(string(raw))
}

// feedCursor 记录按开始时间排序的查询位置，_id 用于同一时间点内的去重
type feedCursor struct {
	StartDatetime time.Time          `json:"t"`
	ID            primitive.ObjectID `json:"i"`
}

func encodeFeedCursor(startDatetime time.Time, id primitive.ObjectID) string {
	raw, _ := json.Marshal(feedCursor{StartDatetime: startDatetime, ID: id})
	return base64.URLEncoding.EncodeToString(raw)
}

func decodeFeedCursor(cursor string) (feedCursor, error) {
	var fc feedCursor
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return fc, err
	}
	err = json.Unmarshal(raw, &fc)
	return fc, err
}
