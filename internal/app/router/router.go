package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"credverify/internal/app/handlers"
	"credverify/internal/app/middleware"
	"credverify/internal/service/interfaces"
)

const ServiceName = "credverify-credit-builder"

func SetupRouter(platform interfaces.PlatformInterface) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware(ServiceName))
	r.Use(middleware.AttachTraceID())

	escrowHandler := handlers.NewEscrowHandler(platform)
	loanHandler := handlers.NewLoanHandler(platform)
	paymentHandler := handlers.NewPaymentHandler(platform)
	scoreHandler := handlers.NewScoreHandler(platform)
	adminHandler := handlers.NewAdminHandler(platform)
	assetHandler := handlers.NewAssetHandler(platform)
	healthCheckHandler := handlers.NewHealthCheckHandler()

	base := r.Group("/IntegrationServices/CreditBuilder")

	base.POST("/Collateral/Deposit", escrowHandler.Deposit)
	base.POST("/Collateral/:LoanId/Withdraw", escrowHandler.Withdraw)
	base.GET("/Collateral/:LoanId", escrowHandler.CollateralRecord)

	base.GET("/Loans/:LoanId", loanHandler.LoanDetails)
	base.GET("/Loans/:LoanId/ExpectedPayment", loanHandler.ExpectedPayment)
	base.POST("/Loans/:LoanId/Payment", paymentHandler.MakePayment)
	base.POST("/Loans/:LoanId/EarlyTermination", loanHandler.RequestEarlyTermination)
	base.POST("/Loans/:LoanId/MarkDefaulted", loanHandler.MarkDefaulted)

	base.GET("/Scores/:Borrower", scoreHandler.ScoreData)

	base.POST("/Assets/Mint", assetHandler.Mint)
	base.POST("/Assets/Approve", assetHandler.Approve)
	base.GET("/Assets/:Asset/Balance/:Holder", assetHandler.Balance)

	base.POST("/Admin/Treasury", adminHandler.SetTreasury)
	base.POST("/Admin/EarlyTerminationFee", adminHandler.SetEarlyTerminationFee)
	base.POST("/Admin/SupportedAssets", adminHandler.AddSupportedAsset)
	base.POST("/Admin/SweepFees", adminHandler.SweepFees)

	base.GET("/HealthCheck", healthCheckHandler.HealthCheck)

	return r
}
