package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Letterhead is the issuer's static text printed on every invoice document.
type Letterhead struct {
	CompanyName string   `mapstructure:"companyName"`
	TagLine     string   `mapstructure:"tagLine"`
	PoweredBy   string   `mapstructure:"poweredBy"`
	Terms       []string `mapstructure:"terms"`
	SignedFor   string   `mapstructure:"signedFor"`
	Signatory   string   `mapstructure:"signatory"`
}

func DefaultLetterhead() Letterhead {
	return Letterhead{
		CompanyName: "I-VOICE",
		TagLine:     "INVOICE MANAGEMENT SYSTEM",
		PoweredBy:   "Powered by: I-Voice",
		Terms: []string{
			"Interest will be charged @22% p.a on bill if not paid as agreed upon.",
			"In case of any defect, kindly inform within 15 days from delivery.",
			"Subject to your city jurisdiction only.",
		},
		SignedFor: "For: I-Voice",
		Signatory: "Authorized Signatory",
	}
}

// LetterheadHolder serves the current letterhead and hot-reloads it when the
// config file changes, so a running instance picks up rebranding without a
// restart.
type LetterheadHolder struct {
	current atomic.Value // holds Letterhead
}

func NewLetterheadHolder() (*LetterheadHolder, error) {
	v := viper.New()

	v.SetConfigName("letterhead")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/ivoice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("IVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultLetterhead()
		v.SetDefault("letterhead.companyName", defaults.CompanyName)
		v.SetDefault("letterhead.tagLine", defaults.TagLine)
		v.SetDefault("letterhead.poweredBy", defaults.PoweredBy)
		v.SetDefault("letterhead.terms", defaults.Terms)
		v.SetDefault("letterhead.signedFor", defaults.SignedFor)
		v.SetDefault("letterhead.signatory", defaults.Signatory)
	}

	var lh Letterhead
	if err := v.UnmarshalKey("letterhead", &lh); err != nil {
		return nil, err
	}
	if err := validateLetterhead(lh); err != nil {
		return nil, err
	}

	holder := &LetterheadHolder{}
	holder.current.Store(lh)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Letterhead
		if err := v.UnmarshalKey("letterhead", &updated); err != nil {
			log.Printf("[letterhead] reload failed: %v", err)
			return
		}
		if err := validateLetterhead(updated); err != nil {
			log.Printf("[letterhead] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[letterhead] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *LetterheadHolder) Get() Letterhead {
	return h.current.Load().(Letterhead)
}

func validateLetterhead(lh Letterhead) error {
	if strings.TrimSpace(lh.CompanyName) == "" {
		return errors.New("letterhead.companyName cannot be empty")
	}
	return nil
}
