package integration_tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/controllers"
	"github.com/guardiancapital/ledgerhub/lib"
	"github.com/guardiancapital/ledgerhub/lib/responses"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/guardiancapital/ledgerhub/lib/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HttpApiTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	service *service.LedgerService
	alice   testUser
}

func (suite *HttpApiTestSuite) SetupSuite() {
	svc, err := LedgerTestServiceInit(nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	users, err := createTestUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.alice = users[0]

	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	suite.echo.POST("/auth", controllers.NewAuthController(suite.service).Auth)
	secured := suite.echo.Group("", tokens.Middleware(suite.service.Config.JWTSecret))
	secured.GET("/v2/balance", controllers.NewBalanceController(suite.service).Balance)
	secured.GET("/v2/accounts", controllers.NewAccountsController(suite.service).Accounts)
	secured.POST("/v2/payments/internal", controllers.NewInternalTransferController(suite.service).Transfer)
}

func (suite *HttpApiTestSuite) TearDownSuite() {
	clearTable(suite.service, "transactions")
	clearTable(suite.service, "accounts")
	clearTable(suite.service, "users")
}

func (suite *HttpApiTestSuite) TearDownTest() {
	clearTable(suite.service, "transactions")
	_, err := suite.service.DB.Exec("UPDATE accounts SET balance = 0")
	assert.NoError(suite.T(), err)
}

func (suite *HttpApiTestSuite) authenticate(login, pin string) (accessToken string, statusCode int) {
	body, _ := json.Marshal(&controllers.AuthRequestBody{Login: login, Password: pin})
	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return "", rec.Code
	}
	authResponse := controllers.AuthResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&authResponse))
	return authResponse.AccessToken, rec.Code
}

func (suite *HttpApiTestSuite) TestAuthAndBalance() {
	token, code := suite.authenticate(suite.alice.user.Login, suite.alice.pin)
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.NotEmpty(suite.T(), token)

	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "250.00"))

	req := httptest.NewRequest(http.MethodGet, "/v2/balance", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	balanceResponse := controllers.BalanceResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&balanceResponse))
	assert.Equal(suite.T(), "250.00", balanceResponse.Balance)
	assert.Equal(suite.T(), "USD", balanceResponse.Currency)
}

func (suite *HttpApiTestSuite) TestAuthRejectsWrongPin() {
	_, code := suite.authenticate(suite.alice.user.Login, "not-the-pin")
	assert.Equal(suite.T(), http.StatusUnauthorized, code)
}

func (suite *HttpApiTestSuite) TestBalanceRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/v2/balance", nil)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *HttpApiTestSuite) TestTransferEndpoint() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "500.00"))
	token, _ := suite.authenticate(suite.alice.user.Login, suite.alice.pin)

	body, _ := json.Marshal(&controllers.InternalTransferRequestBody{
		FromAccountId:   checking.ID,
		ToAccountNumber: suite.alice.accounts[common.AccountKindSavings].AccountNumber,
		Amount:          "100.00",
		Pin:             suite.alice.pin,
	})
	req := httptest.NewRequest(http.MethodPost, "/v2/payments/internal", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	transferResponse := controllers.TransferResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&transferResponse))
	assert.Equal(suite.T(), "100.00", transferResponse.Amount)
	assert.Equal(suite.T(), "5.00", transferResponse.Fee)

	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "395.00", balance.StringFixed(2))
}

func (suite *HttpApiTestSuite) TestTransferEndpointInsufficientFunds() {
	checking := suite.alice.accounts[common.AccountKindChecking]
	assert.NoError(suite.T(), fund(suite.service, checking.ID, "50.00"))
	token, _ := suite.authenticate(suite.alice.user.Login, suite.alice.pin)

	body, _ := json.Marshal(&controllers.InternalTransferRequestBody{
		FromAccountId:   checking.ID,
		ToAccountNumber: suite.alice.accounts[common.AccountKindSavings].AccountNumber,
		Amount:          "50.00",
		Pin:             suite.alice.pin,
	})
	req := httptest.NewRequest(http.MethodPost, "/v2/payments/internal", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	errorResponse := responses.ErrorResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&errorResponse))
	assert.Equal(suite.T(), responses.NotEnoughBalanceError.Code, errorResponse.Code)

	balance, err := balanceOf(suite.service, checking.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "50.00", balance.StringFixed(2))
}

func TestHttpApiTestSuite(t *testing.T) {
	if os.Getenv("DATABASE_URI") == "" {
		t.Skip("DATABASE_URI not set, skipping integration tests")
	}
	suite.Run(t, new(HttpApiTestSuite))
}
