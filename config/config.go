package config

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Config represents config info
var Config ConfList

// ConfList has contents of config.ini
type ConfList struct {
	DBdriver string
	DBname   string

	Symbol    string
	StartDate string
	EndDate   string
	StartCash float64

	EquityFeeRate   float64
	EquityFeeMin    float64
	EquityFeeMax    float64
	MonthlyFxVolume float64
}

// InitConfig initializes config settings
func InitConfig() {
	conf, err := ini.Load("config.ini")
	if err != nil {
		logrus.Warnf("init file open error: %v", err)
	}

	Config = ConfList{
		DBdriver:        conf.Section("db").Key("driver").String(),
		DBname:          conf.Section("db").Key("name").String(),
		Symbol:          conf.Section("engine").Key("symbol").MustString("SPY"),
		StartDate:       conf.Section("engine").Key("start").String(),
		EndDate:         conf.Section("engine").Key("end").String(),
		StartCash:       conf.Section("engine").Key("cash").MustFloat64(100000),
		EquityFeeRate:   conf.Section("fees").Key("equity_rate").MustFloat64(0.0005),
		EquityFeeMin:    conf.Section("fees").Key("equity_min").MustFloat64(1.0),
		EquityFeeMax:    conf.Section("fees").Key("equity_max").MustFloat64(50.0),
		MonthlyFxVolume: conf.Section("fees").Key("monthly_fx_volume").MustFloat64(0),
	}
}
