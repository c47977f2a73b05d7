// Package artifact loads the trained classifier and optional scaler once at
// startup and hands them out as an immutable Resources value.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/model"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/patient"
)

// ErrLoad marks any failure to produce usable resources. Callers must treat
// it as fatal.
var ErrLoad = errors.New("load artifacts")

type Options struct {
	ModelName     string
	ScalerName    string // empty disables scaling
	RemoteURL     string // when set the model is served by a sidecar
	RemoteTimeout time.Duration
}

type Info struct {
	Kind     model.Kind `json:"kind"`
	Source   string     `json:"source"`
	Scaled   bool       `json:"scaled"`
	LoadedAt time.Time  `json:"loaded_at"`
}

// Resources is shared read-only by every request after Load returns.
type Resources struct {
	Model  model.Classifier
	Scaler model.Scaler
	Info   Info
}

type Loader struct {
	source Source
	opts   Options
	schema model.Schema
}

func NewLoader(source Source, opts Options) *Loader {
	return &Loader{
		source: source,
		opts:   opts,
		schema: model.Schema{Columns: patient.ColumnNames()},
	}
}

func (l *Loader) Load(ctx context.Context) (*Resources, error) {
	res := &Resources{}

	if l.opts.RemoteURL != "" {
		res.Model = model.NewRemoteClassifier(l.opts.RemoteURL, l.opts.RemoteTimeout)
		res.Info.Kind = model.KindRemote
		res.Info.Source = l.opts.RemoteURL
	} else {
		if l.opts.ModelName == "" {
			return nil, fmt.Errorf("%w: no model artifact configured", ErrLoad)
		}
		a, err := l.read(ctx, l.opts.ModelName)
		if err != nil {
			return nil, err
		}
		clf, err := a.Classifier(l.schema)
		if err != nil {
			return nil, fmt.Errorf("%w: model %s: %w", ErrLoad, l.opts.ModelName, err)
		}
		res.Model = clf
		res.Info.Kind = a.Kind
		res.Info.Source = l.source.String()
	}

	if l.opts.ScalerName != "" {
		a, err := l.read(ctx, l.opts.ScalerName)
		if err != nil {
			return nil, err
		}
		scaler, err := a.Scaler(l.schema)
		if err != nil {
			return nil, fmt.Errorf("%w: scaler %s: %w", ErrLoad, l.opts.ScalerName, err)
		}
		res.Scaler = scaler
		res.Info.Scaled = true
	}

	res.Info.LoadedAt = time.Now().UTC()
	log.WithFields(log.Fields{
		"kind":   res.Info.Kind,
		"source": res.Info.Source,
		"scaled": res.Info.Scaled,
	}).Info("model resources loaded")

	return res, nil
}

func (l *Loader) read(ctx context.Context, name string) (*model.Artifact, error) {
	data, err := l.source.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	a, err := model.ParseArtifact(data, l.schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}
	return a, nil
}
