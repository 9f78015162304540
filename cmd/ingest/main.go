package main

import (
	"github.com/armandonoel2022/srcapp-sub001/internal/app"
	"github.com/armandonoel2022/srcapp-sub001/internal/config"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunIngest(config.Load()); err != nil {
		logger.Fatal("run ingest failed", zap.Error(err))
	}
}
