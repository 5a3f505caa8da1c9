package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/repository/interfaces"
	"organising-events-app/internal/util"
)

// eventRepository 实现了 EventRepository 接口
type eventRepository struct {
	events *mongo.Collection
}

// NewEventRepository 创建一个新的 eventRepository 实例
func NewEventRepository(db *mongo.Database) interfaces.EventRepository {
	return &eventRepository{events: db.Collection("events")}
}

// Create 创建一个新事件并回填生成的ID
func (r *eventRepository) Create(event *model.Event) error {
	ctx, cancel := opContext()
	defer cancel()

	res, err := r.events.InsertOne(ctx, event)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建事件失败", err)
	}
	event.ID = res.InsertedID.(primitive.ObjectID)
	util.Logger.Info("事件创建成功", zap.String("event_id", event.ID.Hex()))
	return nil
}

// FindByID 通过ID查找事件，不存在时返回 nil
func (r *eventRepository) FindByID(id primitive.ObjectID) (*model.Event, error) {
	ctx, cancel := opContext()
	defer cancel()

	var event model.Event
	err := r.events.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查找事件失败", err)
	}
	return &event, nil
}

// FindByIDs 批量查找事件并保持传入顺序，缺失的ID会被跳过
func (r *eventRepository) FindByIDs(ids []primitive.ObjectID) ([]*model.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := opContext()
	defer cancel()

	cur, err := r.events.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "批量查找事件失败", err)
	}
	var found []*model.Event
	if err := cur.All(ctx, &found); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取事件结果失败", err)
	}

	byID := make(map[primitive.ObjectID]*model.Event, len(found))
	for _, event := range found {
		byID[event.ID] = event
	}
	events := make([]*model.Event, 0, len(ids))
	for _, id := range ids {
		if event, ok := byID[id]; ok {
			events = append(events, event)
		} else {
			util.Logger.Warn("引用的事件不存在，已跳过", zap.String("event_id", id.Hex()))
		}
	}
	return events, nil
}

// Update 以整文档替换的方式更新事件
func (r *eventRepository) Update(event *model.Event) error {
	ctx, cancel := opContext()
	defer cancel()

	_, err := r.events.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新事件失败", err)
	}
	return nil
}

// Delete 删除事件
func (r *eventRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := r.events.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除事件失败", err)
	}
	util.Logger.Info("事件已删除", zap.String("event_id", id.Hex()))
	return nil
}

// Search 按组合过滤条件查询事件并做游标分页
func (r *eventRepository) Search(filters model.EventFilters, cursor string, perPage int) ([]*model.Event, string, error) {
	filter := buildEventFilter(filters)
	if cursor != "" {
		if last, err := decodeIDCursor(cursor); err == nil {
			filter["_id"] = bson.M{"$gt": last}
		} else {
			util.Logger.Warn("游标格式错误，返回第一页", zap.String("cursor", cursor))
		}
	}

	ctx, cancel := opContext()
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(perPage) + 1)
	cur, err := r.events.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "搜索事件失败", err)
	}
	var events []*model.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "读取事件结果失败", err)
	}

	next := ""
	if len(events) > perPage {
		events = events[:perPage]
		next = encodeIDCursor(events[len(events)-1].ID)
	}
	return events, next, nil
}

// FetchByNameRange 按名称区间取回全部事件
func (r *eventRepository) FetchByNameRange(nameRange model.NameRange) ([]*model.Event, error) {
	ctx, cancel := opContext()
	defer cancel()

	filter := bson.M{"event_name": nameRangeCondition(nameRange)}
	cur, err := r.events.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "按名称搜索事件失败", err)
	}
	var events []*model.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取事件结果失败", err)
	}
	return events, nil
}

// Feed 按开始时间排序返回事件，游标记录上一页最后一条的排序位置
func (r *eventRepository) Feed(cursor string, perPage int) ([]*model.Event, string, error) {
	filter := bson.M{}
	if cursor != "" {
		if fc, err := decodeFeedCursor(cursor); err == nil {
			filter["$or"] = []bson.M{
				{"start_datetime": bson.M{"$gt": fc.StartDatetime}},
				{"start_datetime": fc.StartDatetime, "_id": bson.M{"$gt": fc.ID}},
			}
		} else {
			util.Logger.Warn("游标格式错误，返回第一页", zap.String("cursor", cursor))
		}
	}

	ctx, cancel := opContext()
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_datetime", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(perPage) + 1)
	cur, err := r.events.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "查询事件流失败", err)
	}
	var events []*model.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "读取事件结果失败", err)
	}

	next := ""
	if len(events) > perPage {
		events = events[:perPage]
		last := events[len(events)-1]
		next = encodeFeedCursor(last.StartDatetime, last.ID)
	}
	return events, next, nil
}

// buildEventFilter 把搜索条件转成查询过滤器，零值字段不参与过滤
func buildEventFilter(filters model.EventFilters) bson.M {
	filter := bson.M{}
	if filters.Name != nil {
		filter["event_name"] = nameRangeCondition(*filters.Name)
	}
	if b := filters.Boundaries; b != nil {
		filter["latitude"] = bson.M{"$gt": b.MinLatitude, "$lt": b.MaxLatitude}
		if b.Wraps {
			// 包围盒横跨对向子午线，经度条件拆成两段
			filter["$or"] = []bson.M{
				{"longitude": bson.M{"$gte": b.MinLongitude}},
				{"longitude": bson.M{"$lte": b.MaxLongitude}},
			}
		} else {
			filter["longitude"] = bson.M{"$gt": b.MinLongitude, "$lt": b.MaxLongitude}
		}
	}
	if !filters.DayMin.IsZero() {
		filter["start_datetime"] = bson.M{"$gt": filters.DayMin, "$lt": filters.DayMax}
	}
	return filter
}
