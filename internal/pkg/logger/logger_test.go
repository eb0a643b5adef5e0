package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	. "github.com/smartystreets/goconvey/convey"

	"onedocs/internal/config"
)

func TestInit(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	prevTimeFormat := zerolog.TimeFieldFormat
	defer func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
		zerolog.TimeFieldFormat = prevTimeFormat
	}()

	Convey("Init 按配置设置全局日志", t, func() {
		Convey("file 输出写 JSON，并按级别过滤", func() {
			path := filepath.Join(t.TempDir(), "onedocs.log")
			err := Init(&config.LogConfig{Level: "warn", Format: "json", Output: "file", FilePath: path})
			So(err, ShouldBeNil)

			log.Info().Msg("dropped")
			log.Warn().Str("stage", "http_status").Msg("kept")

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"message":"kept"`)
			So(string(data), ShouldContainSubstring, `"stage":"http_status"`)
			So(string(data), ShouldNotContainSubstring, "dropped")
		})

		Convey("非法级别回落到 info", func() {
			So(Init(&config.LogConfig{Level: "verbose"}), ShouldBeNil)
			So(zerolog.GlobalLevel(), ShouldEqual, zerolog.InfoLevel)
		})

		Convey("时间格式", func() {
			So(Init(&config.LogConfig{TimeFormat: "UnixMs"}), ShouldBeNil)
			So(zerolog.TimeFieldFormat, ShouldEqual, zerolog.TimeFormatUnixMs)

			So(Init(&config.LogConfig{}), ShouldBeNil)
			So(zerolog.TimeFieldFormat, ShouldEqual, time.RFC3339)
		})

		Convey("日志文件无法打开时返回错误", func() {
			path := filepath.Join(t.TempDir(), "missing", "onedocs.log")
			So(Init(&config.LogConfig{Output: "file", FilePath: path}), ShouldNotBeNil)
		})
	})
}
