package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/calc/pkg/utils/ptr"
)

const (
	MinDivisionPrecision = 1
	MaxDivisionPrecision = 100
)

var (
	defaultFileConfig = &RawFileConfig{
		// 38 fractional digits matches a 38-digit decimal mantissa.
		DivisionPrecision:  ptr.To(38),
		AllowNonRootAccess: ptr.To(false),
		PublishEvents:      ptr.To(true),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	DivisionPrecision  *int  `json:"divisionPrecision,omitempty"`
	AllowNonRootAccess *bool `json:"allowNonRootAccess,omitempty"`
	PublishEvents      *bool `json:"publishEvents,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		DivisionPrecision:  ptr.To(c.DivisionPrecision()),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
		PublishEvents:      ptr.To(c.PublishEvents()),
	}

	return rawConfig, nil
}

func (f *File) DivisionPrecision() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var precision int

	if f.c.DivisionPrecision != nil {
		precision = *f.c.DivisionPrecision
	} else {
		precision = *defaultFileConfig.DivisionPrecision
	}

	return precision
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var allowNonRootAccess bool

	if f.c.AllowNonRootAccess != nil {
		allowNonRootAccess = *f.c.AllowNonRootAccess
	} else {
		allowNonRootAccess = *defaultFileConfig.AllowNonRootAccess
	}

	return allowNonRootAccess
}

func (f *File) PublishEvents() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var publishEvents bool

	if f.c.PublishEvents != nil {
		publishEvents = *f.c.PublishEvents
	} else {
		publishEvents = *defaultFileConfig.PublishEvents
	}

	return publishEvents
}

func (f *File) SetDivisionPrecision(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	if i < MinDivisionPrecision || i > MaxDivisionPrecision {
		panic("division precision must be between 1 and 100")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DivisionPrecision = &i
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.AllowNonRootAccess = &b
}

func (f *File) SetPublishEvents(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.PublishEvents = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}

	if p := conf.DivisionPrecision; p != nil && (*p < MinDivisionPrecision || *p > MaxDivisionPrecision) {
		return pkgerrors.Errorf("divisionPrecision must be between %d and %d, got %d in %s",
			MinDivisionPrecision, MaxDivisionPrecision, *p, f.filepath)
	}

	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"divisionPrecision":  f.DivisionPrecision(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
		"publishEvents":      f.PublishEvents(),
	}
}
