package app

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/config"
	"github.com/armandonoel2022/srcapp-sub001/internal/geo"
	"github.com/armandonoel2022/srcapp-sub001/internal/geocode"
	"github.com/armandonoel2022/srcapp-sub001/internal/position"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/connection"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Trackers publish to /trackers/{device_id}/position.
const positionTopic = "/trackers/+/position"

// RunIngest subscribes to the tracker position topic and persists every
// valid report. Reports without a street address are enriched through the
// reverse geocoder, best effort.
func RunIngest(cfg *config.Config) error {
	logger := zap.L().Named("app.ingest")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}

	positionService := position.NewService(position.NewRepository(gormDB))
	geocoder := geocode.NewClient(
		&http.Client{Timeout: 10 * time.Second},
		cfg.GeocodeBaseURL,
		cfg.GeocodeAPIKey,
		rdb,
	)

	client, err := connection.ConnectMQTT(cfg.MQTTBroker, cfg.MQTTClientID)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		var req position.IngestPositionRequest
		if err := json.Unmarshal(msg.Payload(), &req); err != nil {
			logger.Warn("malformed position payload",
				zap.String("topic", msg.Topic()),
				zap.Error(err),
			)
			return
		}
		if !validPosition(req) {
			logger.Warn("position out of range dropped",
				zap.String("device_id", req.DeviceID),
				zap.Float64("latitude", req.Latitude),
				zap.Float64("longitude", req.Longitude),
			)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if req.Address == "" {
			req.Address = geocoder.Reverse(ctx, geo.GeoPoint{
				Latitude:  req.Latitude,
				Longitude: req.Longitude,
			})
		}

		if err := positionService.Ingest(ctx, req); err != nil {
			logger.Error("position insert failed",
				zap.String("device_id", req.DeviceID),
				zap.Error(err),
			)
		}
	}

	if token := client.Subscribe(positionTopic, 1, handler); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	logger.Info("subscribed", zap.String("topic", positionTopic))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("ingest shutting down")
	return nil
}

func validPosition(req position.IngestPositionRequest) bool {
	return req.DeviceID != "" &&
		req.Latitude >= -90 && req.Latitude <= 90 &&
		req.Longitude >= -180 && req.Longitude <= 180 &&
		req.SpeedKnots >= 0 &&
		!req.DeviceTime.IsZero()
}
