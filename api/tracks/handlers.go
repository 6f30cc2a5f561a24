package tracks

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/waveform-comments/api/types"
	tracksService "github.com/killallgit/waveform-comments/internal/services/tracks"
)

// GetTracks lists tracks
// @Summary      List tracks
// @Description  List registered tracks, oldest first
// @Tags         tracks
// @Produce      json
// @Param        limit query int false "Page size" default(50)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {object} types.TracksResponse "Tracks"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/tracks [get]
func GetTracks(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := types.QueryInt(c, "limit", tracksService.DefaultLimit)
		offset := types.QueryInt(c, "offset", 0)

		tracks, err := deps.TrackService.ListTracks(c.Request.Context(), limit, offset)
		if err != nil {
			types.SendError(c, err)
			return
		}

		list := types.FromTrackModels(tracks)
		types.SendSuccess(c, types.TracksResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Tracks retrieved"},
			Tracks:       list,
			Count:        len(list),
			Offset:       offset,
		})
	}
}

// GetTrack returns a single track
// @Summary      Get track
// @Description  Get a track by ID
// @Tags         tracks
// @Produce      json
// @Param        id path int true "Track ID"
// @Success      200 {object} types.TrackResponse "Track"
// @Failure      400 {object} types.ErrorResponse "Invalid track ID"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Router       /api/v1/tracks/{id} [get]
func GetTrack(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return // Error response already sent by utility
		}

		track, err := deps.TrackService.GetTrack(c.Request.Context(), trackID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.TrackResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Track retrieved"},
			Track:        types.FromTrackModel(track),
		})
	}
}

// CreateTrack registers a track
// @Summary      Create track
// @Description  Register an audio file so it can be annotated
// @Tags         tracks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        track body types.CreateTrackRequest true "Track data"
// @Success      201 {object} types.TrackResponse "Created track"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      401 {object} types.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/tracks [post]
func CreateTrack(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateTrackRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		track, err := deps.TrackService.CreateTrack(c.Request.Context(), req.Title, req.FilePath, req.Duration)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.TrackResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Track created"},
			Track:        types.FromTrackModel(track),
		})
	}
}
