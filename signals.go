package isotope

import (
	"context"
	"strconv"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for material events.
var (
	SignalRenderStart       = capitan.NewSignal("isotope.render.start", "Format rendering beginning")
	SignalRenderComplete    = capitan.NewSignal("isotope.render.complete", "Format rendering finished")
	SignalNormalized        = capitan.NewSignal("isotope.material.normalized", "Material composition normalized in place")
	SignalMixed             = capitan.NewSignal("isotope.material.mixed", "Two materials mixed by mass")
	SignalMarshalComplete   = capitan.NewSignal("isotope.marshal.complete", "Material document encoded")
	SignalUnmarshalComplete = capitan.NewSignal("isotope.unmarshal.complete", "Material document decoded")
)

// Keys for typed event data.
var (
	KeyFormat      = capitan.NewStringKey("format")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyMaterial    = capitan.NewStringKey("material")
	KeyOther       = capitan.NewStringKey("other")
	KeyWeight      = capitan.NewStringKey("weight")
	KeyNuclides    = capitan.NewIntKey("nuclides")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitRenderStart emits an event when rendering begins.
func emitRenderStart(ctx context.Context, format, material string, nuclides int) {
	capitan.Emit(ctx, SignalRenderStart,
		KeyFormat.Field(format),
		KeyMaterial.Field(material),
		KeyNuclides.Field(nuclides),
	)
}

// emitRenderComplete emits an event when rendering finishes.
func emitRenderComplete(ctx context.Context, format, material string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(format),
		KeyMaterial.Field(material),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalRenderComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalRenderComplete, fields...)
	}
}

// emitNormalized emits an event when a material is normalized in place.
func emitNormalized(ctx context.Context, material string, nuclides int) {
	capitan.Emit(ctx, SignalNormalized,
		KeyMaterial.Field(material),
		KeyNuclides.Field(nuclides),
	)
}

// emitMixed emits an event when two materials are mixed.
func emitMixed(ctx context.Context, material, other string, weight float64, nuclides int) {
	capitan.Emit(ctx, SignalMixed,
		KeyMaterial.Field(material),
		KeyOther.Field(other),
		KeyWeight.Field(strconv.FormatFloat(weight, 'g', -1, 64)),
		KeyNuclides.Field(nuclides),
	)
}

// emitMarshalComplete emits an event when a document is encoded.
func emitMarshalComplete(ctx context.Context, contentType, material string, size int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyMaterial.Field(material),
		KeySize.Field(size),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMarshalComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMarshalComplete, fields...)
	}
}

// emitUnmarshalComplete emits an event when a document is decoded.
func emitUnmarshalComplete(ctx context.Context, contentType string, size int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalUnmarshalComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalUnmarshalComplete, fields...)
	}
}
