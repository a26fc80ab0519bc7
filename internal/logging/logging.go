// Package logging は構造化ロガーの構築を提供する。
//
// marketcliは端末表示を汚さないようファイルへ、mockapiは標準出力へ
// JSON形式のログを出力する。
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は指定レベル・出力先の構造化ロガーを生成する。
// outputPathが空の場合は標準エラー出力に書き込む。
func New(level, outputPath string) (*zap.Logger, error) {
	parsed := zapcore.InfoLevel
	if err := parsed.Set(level); err != nil {
		parsed = zapcore.InfoLevel
	}

	output := "stderr"
	if outputPath != "" {
		output = outputPath
	}

	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(parsed),
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "message",
			LevelKey:    "level",
			TimeKey:     "ts",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
			EncodeTime:  zapcore.ISO8601TimeEncoder,
		},
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("ロガーの構築に失敗: %w", err)
	}
	return logger, nil
}
