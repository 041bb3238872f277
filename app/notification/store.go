package notification

import (
	"context"
	"encoding/json"

	"github.com/TestingSDK2/notify-backend/cache"
	"github.com/TestingSDK2/notify-backend/consts"
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/TestingSDK2/notify-backend/mongodatabase"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// notificationStore - mongo-backed record store with a redis cache in front
// of GetByID
type notificationStore struct {
	mongodb *mongodatabase.DBConfig
	cache   *cache.Cache
}

// NewStore - creates the notification record store
func NewStore(mongodb *mongodatabase.DBConfig, cache *cache.Cache) model.NotificationStore {
	return &notificationStore{
		mongodb: mongodb,
		cache:   cache,
	}
}

func (st *notificationStore) Count(ctx context.Context, filter model.Filter) (int64, error) {
	dbConn, err := st.mongodb.New(ctx, consts.Notification)
	if err != nil {
		return 0, err
	}
	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.Background())

	count, err := notificationCollection.CountDocuments(ctx, filter.ToBSON())
	if err != nil {
		return 0, errors.Wrap(err, "unable to count notifications")
	}
	return count, nil
}

func (st *notificationStore) Find(ctx context.Context, filter model.Filter, sort model.Sort, pageSize, pageNumber int) ([]*model.Notification, error) {
	dbConn, err := st.mongodb.New(ctx, consts.Notification)
	if err != nil {
		return nil, err
	}
	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.Background())

	findOptions := options.Find().
		SetSort(sort.ToBSON()).
		SetSkip(int64(pageSize * (pageNumber - 1))).
		SetLimit(int64(pageSize))
	cur, err := notificationCollection.Find(ctx, filter.ToBSON(), findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "unable to find notifications")
	}

	var notifications []*model.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, errors.Wrap(err, "unable to decode notifications")
	}
	return notifications, nil
}

func (st *notificationStore) Create(ctx context.Context, notification *model.Notification) error {
	dbConn, err := st.mongodb.New(ctx, consts.Notification)
	if err != nil {
		return err
	}
	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.Background())

	if _, err := notificationCollection.InsertOne(ctx, notification); err != nil {
		return errors.Wrap(err, "unable to insert notification")
	}
	st.cacheSet(notification)
	return nil
}

func (st *notificationStore) Update(ctx context.Context, notification *model.Notification, fullReplace bool) error {
	dbConn, err := st.mongodb.New(ctx, consts.Notification)
	if err != nil {
		return err
	}
	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.Background())

	filter := bson.M{"_id": notification.ID}
	if fullReplace {
		_, err = notificationCollection.ReplaceOne(ctx, filter, notification)
	} else {
		_, err = notificationCollection.UpdateOne(ctx, filter, bson.M{"$set": notification})
	}
	if err != nil {
		return errors.Wrap(err, "unable to update notification")
	}
	st.cacheSet(notification)
	return nil
}

func (st *notificationStore) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	if cached := st.cacheGet(id); cached != nil {
		return cached, nil
	}

	dbConn, err := st.mongodb.New(ctx, consts.Notification)
	if err != nil {
		return nil, err
	}
	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.Background())

	notification := &model.Notification{}
	err = notificationCollection.FindOne(ctx, bson.M{"_id": id}).Decode(notification)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to get notification")
	}
	st.cacheSet(notification)
	return notification, nil
}

func (st *notificationStore) cacheGet(id string) *model.Notification {
	if st.cache == nil {
		return nil
	}
	val, err := st.cache.GetValue(consts.NotificationCacheKeyPrefix + id)
	if err != nil || val == "" {
		return nil
	}
	notification := &model.Notification{}
	if err := json.Unmarshal([]byte(val), notification); err != nil {
		return nil
	}
	return notification
}

func (st *notificationStore) cacheSet(notification *model.Notification) {
	if st.cache == nil {
		return
	}
	raw, err := json.Marshal(notification)
	if err != nil {
		return
	}
	key := consts.NotificationCacheKeyPrefix + notification.ID
	if err := st.cache.SetValue(key, string(raw)); err != nil {
		logrus.Errorf("unable to cache notification [%s]: %s", notification.ID, err.Error())
		return
	}
	st.cache.ExpireKey(key, cache.Expire24HR)
}
