package lumen

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrUnknownQuery   = errors.New("unknown lighting query")
	ErrInvalidPayload = errors.New("invalid lighting query payload")
)

type QueryKind int

const (
	QueryEntityLighting QueryKind = iota
	QueryLocationLighting
	QueryPlayerTint
	QueryGropeLightRange
)

var queryNames = map[QueryKind]string{
	QueryEntityLighting:   "entityLighting",
	QueryLocationLighting: "locationLighting",
	QueryPlayerTint:       "playerTint",
	QueryGropeLightRange:  "gropeLightRange",
}

func (k QueryKind) String() string {
	if name, ok := queryNames[k]; ok {
		return name
	}
	return fmt.Sprintf("QueryKind(%d)", int(k))
}

// ParseQueryKind maps a message name to its kind, ignoring case.
func ParseQueryKind(name string) (QueryKind, error) {
	for kind, n := range queryNames {
		if strings.EqualFold(n, name) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
}

// Request is one of the typed lighting queries below.
type Request interface {
	Kind() QueryKind
}

type EntityLightingRequest struct{ Entity EntityId }
type LocationLightingRequest struct{ Location mgl32.Vec3 }
type PlayerTintRequest struct{}
type GropeLightRangeRequest struct{}

func (EntityLightingRequest) Kind() QueryKind   { return QueryEntityLighting }
func (LocationLightingRequest) Kind() QueryKind { return QueryLocationLighting }
func (PlayerTintRequest) Kind() QueryKind       { return QueryPlayerTint }
func (GropeLightRangeRequest) Kind() QueryKind  { return QueryGropeLightRange }

type ReplyKind int

const (
	ColorReply ReplyKind = iota
	FloatReply
)

func (k ReplyKind) String() string {
	if k == FloatReply {
		return "floatReply"
	}
	return "colorReply"
}

// Response carries a color for ColorReply and a scalar for FloatReply.
type Response struct {
	Kind  ReplyKind
	Color Color
	Float float32
}

// LightingService answers lighting queries for the surrounding game and for
// other modules. Entity results are cached until the next cache clear.
type LightingService struct {
	Meter    *LightMeter
	Cache    *EntityLightingCache
	Player   *Player
	Env      *Environment
	Settings *Settings
	Grope    *GropeLight
	Time     *Time

	log *ThrottledLogger
}

func NewLightingService(meter *LightMeter, cache *EntityLightingCache, player *Player, grope *GropeLight, t *Time, logger Logger) *LightingService {
	return &LightingService{
		Meter:    meter,
		Cache:    cache,
		Player:   player,
		Env:      meter.Env,
		Settings: meter.Settings,
		Grope:    grope,
		Time:     t,
		log:      NewThrottledLogger(logger, time.Second, 5),
	}
}

// MeasureEntityLighting returns the cached or freshly measured light on the
// entity. The entity itself never occludes.
func (s *LightingService) MeasureEntityLighting(eid EntityId) Color {
	if color, ok := s.Cache.Get(eid); ok {
		return color
	}
	color := s.Meter.MeasureEntity(eid)
	s.Cache.Put(eid, color)
	return color
}

// MeasureLocationLighting returns the light at an arbitrary point. Only
// terrain blocks light for location queries.
func (s *LightingService) MeasureLocationLighting(location mgl32.Vec3) Color {
	return s.Meter.Measure(location, NoEntity, LayerTerrain)
}

// PlayerTint is the player's measured lighting, overridden while
// magically concealed.
func (s *LightingService) PlayerTint() Color {
	measured := s.MeasureEntityLighting(s.Player.Entity)
	return ConcealmentTint(measured, s.Player, s.Time.Elapsed)
}

// GropeLightRange is 0 when the grope light is turned off in settings.
func (s *LightingService) GropeLightRange() float32 {
	if !s.Settings.GropeLight {
		return 0
	}
	return s.Grope.ActiveRange(s.Env)
}

func (s *LightingService) Handle(req Request) (Response, error) {
	switch r := req.(type) {
	case EntityLightingRequest:
		return Response{Kind: ColorReply, Color: s.MeasureEntityLighting(r.Entity)}, nil
	case LocationLightingRequest:
		return Response{Kind: ColorReply, Color: s.MeasureLocationLighting(r.Location)}, nil
	case PlayerTintRequest:
		return Response{Kind: ColorReply, Color: s.PlayerTint()}, nil
	case GropeLightRangeRequest:
		return Response{Kind: FloatReply, Float: s.GropeLightRange()}, nil
	default:
		err := fmt.Errorf("%w: %T", ErrUnknownQuery, req)
		s.log.Errorf("lighting query: %v", err)
		return Response{}, err
	}
}

// HandleMessage is the untyped entry point used by message-passing callers.
// entityLighting wants an EntityId and locationLighting an mgl32.Vec3 or
// [3]float32; the other queries ignore the payload.
func (s *LightingService) HandleMessage(name string, payload any) (Response, error) {
	kind, err := ParseQueryKind(name)
	if err != nil {
		s.log.Errorf("lighting query: %v", err)
		return Response{}, err
	}

	req, err := requestFor(kind, payload)
	if err != nil {
		s.log.Errorf("lighting query %s: %v", kind, err)
		return Response{}, err
	}
	return s.Handle(req)
}

func requestFor(kind QueryKind, payload any) (Request, error) {
	switch kind {
	case QueryEntityLighting:
		if eid, ok := payload.(EntityId); ok {
			return EntityLightingRequest{Entity: eid}, nil
		}
		return nil, fmt.Errorf("%w: expects an EntityId, got %T", ErrInvalidPayload, payload)
	case QueryLocationLighting:
		switch p := payload.(type) {
		case mgl32.Vec3:
			return LocationLightingRequest{Location: p}, nil
		case [3]float32:
			return LocationLightingRequest{Location: mgl32.Vec3(p)}, nil
		}
		return nil, fmt.Errorf("%w: expects a Vec3, got %T", ErrInvalidPayload, payload)
	case QueryPlayerTint:
		return PlayerTintRequest{}, nil
	default:
		return GropeLightRangeRequest{}, nil
	}
}
