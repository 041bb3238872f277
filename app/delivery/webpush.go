package delivery

import (
	"context"
	"encoding/json"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/TestingSDK2/notify-backend/app/config"
	"github.com/TestingSDK2/notify-backend/database"
	"github.com/TestingSDK2/notify-backend/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func sendWebPush(ctx context.Context, conf *config.Config, mysql *database.Database, deviceID string, message model.Document) error {
	subscriptions, err := fetchPushSubscriptions(ctx, mysql, deviceID)
	if err != nil {
		return err
	}
	if len(subscriptions) == 0 {
		return nil
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return errors.Wrap(err, "unable to serialize push payload")
	}

	for _, subscription := range subscriptions {
		resp, err := webpush.SendNotification(payload, subscription.ToWebPush(), &webpush.Options{
			Subscriber:      conf.VapidSubscriber,
			VAPIDPublicKey:  conf.VapidPublicKey,
			VAPIDPrivateKey: conf.VapidPrivateKey,
			TTL:             60,
		})
		if err != nil {
			logrus.Errorf("unable to web-push to device [%s]: %s", deviceID, err.Error())
			continue
		}
		resp.Body.Close()
	}
	return nil
}

func fetchPushSubscriptions(ctx context.Context, mysql *database.Database, deviceID string) ([]*model.PushSubscription, error) {
	stmt := "SELECT id, userID, deviceID, endpoint, auth, p256dh FROM `notify-dev`.PushSubscriptions WHERE deviceID = ?"
	subscriptions := []*model.PushSubscription{}
	err := mysql.Conn.SelectContext(ctx, &subscriptions, stmt, deviceID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch push subscriptions")
	}
	return subscriptions, nil
}

func insertPushSubscription(ctx context.Context, mysql *database.Database, subscription *model.PushSubscription) (int, error) {
	stmt := "INSERT INTO `notify-dev`.PushSubscriptions (userID, deviceID, endpoint, auth, p256dh) VALUES(:userID,:deviceID,:endpoint,:auth,:p256dh);"
	r, err := mysql.Conn.NamedExecContext(ctx, stmt, subscription)
	if err != nil {
		return 0, errors.Wrap(err, "unable to insert push subscription")
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get LastInsertId")
	}
	return int(id), nil
}

func removePushSubscription(ctx context.Context, mysql *database.Database, userID, deviceID string) error {
	stmt := "DELETE FROM `notify-dev`.PushSubscriptions WHERE userID = ? AND deviceID = ?;"
	_, err := mysql.Conn.ExecContext(ctx, stmt, userID, deviceID)
	return errors.Wrap(err, "unable to remove push subscription")
}
