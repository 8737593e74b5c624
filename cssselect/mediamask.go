package cssselect

import "cssengine/rule"

// MediaMask re-exports rule.MediaMask (spec.md §6 "Media mask"): it must
// live in package rule to avoid an import cycle (rule.Rule carries a
// MediaMask field directly), so cssselect only aliases it for callers who
// never otherwise touch package rule.
type MediaMask = rule.MediaMask

const (
	MediaScreen     = rule.MediaScreen
	MediaPrint      = rule.MediaPrint
	MediaSpeech     = rule.MediaSpeech
	MediaAural      = rule.MediaAural
	MediaBraille    = rule.MediaBraille
	MediaEmbossed   = rule.MediaEmbossed
	MediaHandheld   = rule.MediaHandheld
	MediaProjection = rule.MediaProjection
	MediaTTY        = rule.MediaTTY
	MediaTV         = rule.MediaTV
	MediaAll        = rule.MediaAll
)
