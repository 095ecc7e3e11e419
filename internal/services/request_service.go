package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	jsoniter "github.com/json-iterator/go"

	"github.com/jwaldner/vanilla/internal/config"
	"github.com/jwaldner/vanilla/internal/models"
	"github.com/jwaldner/vanilla/internal/utils"
	vanilla "github.com/jwaldner/vanilla/vanilla_lib"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestService handles HTTP request parsing and turns requests into contracts
type RequestService struct {
	defaults config.DefaultsConfig
	decoder  *schema.Decoder
	now      func() time.Time
}

// NewRequestService creates a new request service
func NewRequestService(defaults config.DefaultsConfig) *RequestService {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &RequestService{
		defaults: defaults,
		decoder:  decoder,
		now:      time.Now,
	}
}

// ParseCalculationRequest reads a contract from a JSON body (POST) or the
// query string (GET).
func (s *RequestService) ParseCalculationRequest(r *http.Request) (*models.CalculationRequest, error) {
	var req models.CalculationRequest

	switch r.Method {
	case http.MethodGet:
		if err := s.decoder.Decode(&req, r.URL.Query()); err != nil {
			return nil, fmt.Errorf("failed to decode query: %w", err)
		}
	case http.MethodPost:
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("method not allowed: %s", r.Method)
	}

	return &req, nil
}

// ParseAnalysisRequest parses the full form body
func (s *RequestService) ParseAnalysisRequest(r *http.Request) (*models.AnalysisRequest, error) {
	var req models.AnalysisRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequestService) ParsePayoffRequest(r *http.Request) (*models.PayoffRequest, error) {
	var req models.PayoffRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if req.OptionType == "" {
		req.OptionType = s.defaults.OptionType
	}
	return &req, nil
}

func (s *RequestService) ParseSmileRequest(r *http.Request) (*models.SmileRequest, error) {
	var req models.SmileRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}

	// Set defaults
	if req.BaseVol == nil {
		baseVol := s.defaults.SmileBaseVol
		req.BaseVol = &baseVol
	}
	return &req, nil
}

func (s *RequestService) ParseBatchRequest(r *http.Request) (*models.BatchCalculationRequest, error) {
	var req models.BatchCalculationRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if len(req.Calculations) == 0 {
		return nil, fmt.Errorf("calculations are required")
	}
	return &req, nil
}

// ToContract validates a request and converts it to an OptionContract. An
// empty option type takes the configured default.
func (s *RequestService) ToContract(req models.CalculationRequest) (vanilla.OptionContract, error) {
	typeName := req.OptionType
	if typeName == "" {
		typeName = s.defaults.OptionType
	}
	optionType, err := vanilla.ParseOptionType(typeName)
	if err != nil {
		return vanilla.OptionContract{}, err
	}

	expiry := req.TimeToMaturity
	if req.ExpirationDate != "" {
		expiry, err = utils.YearsToExpiration(req.ExpirationDate, s.now())
		if err != nil {
			return vanilla.OptionContract{}, &vanilla.DomainInputError{
				Field: "expiration_date", Value: req.ExpirationDate, Reason: err.Error(),
			}
		}
	}

	c := vanilla.OptionContract{
		Spot:       req.StockPrice,
		Strike:     req.StrikePrice,
		Expiry:     expiry,
		Rate:       req.RiskFreeRate,
		Volatility: req.Volatility,
		Type:       optionType,
	}
	if err := c.Validate(); err != nil {
		return vanilla.OptionContract{}, err
	}
	return c, nil
}

func decodeBody(r *http.Request, v interface{}) error {
	if r.Method != http.MethodPost {
		return fmt.Errorf("method not allowed: %s", r.Method)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	return nil
}
