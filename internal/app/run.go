package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"airquality-server/internal/config"
	"airquality-server/internal/db"
	"airquality-server/internal/httpapi"
	"airquality-server/internal/migrate"
	"airquality-server/internal/modules/airquality"
	"airquality-server/internal/modules/users"
	"airquality-server/internal/mqtt"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dbDriver", cfg.Driver,
		"sqlitePath", cfg.Path,
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
		"mqttBroker", cfg.MQTTBroker,
		"mqttPort", cfg.MQTTPort,
		"mqttTopic", cfg.MQTTTopic,
	)
	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	// Embedded migrations are sqlite DDL; a mysql schema is operator-managed.
	if cfg.Driver == "sqlite3" {
		if err := migrate.Run(dbConn); err != nil {
			return err
		}
	}

	var ok int
	err = dbConn.QueryRow(`SELECT 1`).Scan(&ok)
	if err != nil {
		return err
	}
	if ok != 1 {
		return errors.New("database connection failed")
	}
	slog.Info("database connection successful")

	mux := httpapi.NewMux(dbConn)

	// MQTT ingest is optional; without a broker the service is HTTP-only.
	var mqttSubscriber *mqtt.Subscriber
	if cfg.MQTTBroker != "" {
		mqttSubscriber = mqtt.NewSubscriber(cfg, slog.Default())
	}
	airquality.RegisterFeature(mux, dbConn, subscriberOrNil(mqttSubscriber))
	users.RegisterFeature(mux, dbConn)

	if mqttSubscriber != nil {
		// Short timeout for the initial connect so a down broker doesn't block startup.
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		err = mqttSubscriber.Connect(connectCtx)
		connectCancel()
		if err != nil {
			slog.Warn("mqtt connection failed (continuing without mqtt)", "error", err)
		}
	}

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if mqttSubscriber != nil {
		slog.Info("mqtt disconnecting")
		mqttSubscriber.Disconnect()
	}

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

// subscriberOrNil avoids handing the module a non-nil interface wrapping a
// nil *mqtt.Subscriber.
func subscriberOrNil(s *mqtt.Subscriber) airquality.MQTTSubscriber {
	if s == nil {
		return nil
	}
	return s
}
