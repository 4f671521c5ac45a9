package logging

import (
	"go.uber.org/zap"
)

// New は環境に合わせた zap.Logger を作る。
// prod: JSON / info 以上、dev: 読みやすい形式 / debug 以上。
func New(goEnv string) (*zap.Logger, error) {
	if goEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
