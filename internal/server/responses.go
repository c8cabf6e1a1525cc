package server

import (
	"encoding/json"
	"risk-tracker/internal/domain"
	"risk-tracker/internal/service"
	"time"
)

type turnInfoResponse struct {
	ID       int        `json:"id"`
	Season   *int       `json:"season"`
	Day      *int       `json:"day"`
	Complete *bool      `json:"complete"`
	Active   *bool      `json:"active"`
	Finale   *bool      `json:"finale"`
	RollTime *time.Time `json:"rollTime"`
}

type latestResponse struct {
	Season int `json:"season"`
	Day    int `json:"day"`
}

type rollResponse struct {
	Season         int             `json:"season"`
	Day            int             `json:"day"`
	StartTime      string          `json:"startTime"`
	EndTime        string          `json:"endTime"`
	ChaosRerolls   int             `json:"chaosRerolls"`
	ChaosWeight    int             `json:"chaosWeight"`
	TerritoryRolls json.RawMessage `json:"territoryRolls"`
}

type pastTurnResponse struct {
	Season    *int    `json:"season"`
	Day       *int    `json:"day"`
	Stars     *int    `json:"stars"`
	MVP       bool    `json:"mvp"`
	Territory string  `json:"territory"`
	Team      *string `json:"team"`
}

type overviewResponse struct {
	Latest latestResponse     `json:"latest"`
	Turns  []turnInfoResponse `json:"turns"`
	Roll   *rollResponse      `json:"roll"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toTurnInfoResponses(turns []domain.TurnInfo) []turnInfoResponse {
	resp := make([]turnInfoResponse, len(turns))
	for i, t := range turns {
		resp[i] = turnInfoResponse{
			ID:       t.ID,
			Season:   t.Season,
			Day:      t.Day,
			Complete: t.Complete,
			Active:   t.Active,
			Finale:   t.Finale,
			RollTime: t.RollStartTime,
		}
	}
	return resp
}

func toLatestResponse(latest domain.Latest) latestResponse {
	return latestResponse{Season: latest.Season, Day: latest.Day}
}

func toRollResponse(at domain.Latest, roll domain.Roll) *rollResponse {
	territoryRolls := roll.TerritoryRolls
	if len(territoryRolls) == 0 {
		territoryRolls = json.RawMessage("null")
	}
	return &rollResponse{
		Season:         at.Season,
		Day:            at.Day,
		StartTime:      roll.StartTime,
		EndTime:        roll.EndTime,
		ChaosRerolls:   roll.ChaosRerolls,
		ChaosWeight:    roll.ChaosWeight,
		TerritoryRolls: territoryRolls,
	}
}

func toPastTurnResponses(turns []domain.PastTurn) []pastTurnResponse {
	resp := make([]pastTurnResponse, len(turns))
	for i, t := range turns {
		resp[i] = pastTurnResponse{
			Season:    t.Season,
			Day:       t.Day,
			Stars:     t.Stars,
			MVP:       t.MVP,
			Territory: t.Territory,
			Team:      t.Team,
		}
	}
	return resp
}

func toOverviewResponse(o *service.Overview) overviewResponse {
	resp := overviewResponse{
		Latest: toLatestResponse(o.Latest),
		Turns:  toTurnInfoResponses(o.Turns),
	}
	if o.Roll != nil {
		resp.Roll = toRollResponse(o.Latest, *o.Roll)
	}
	return resp
}
