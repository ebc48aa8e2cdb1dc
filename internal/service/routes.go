package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	OccupantServiceName = "roomshare.v1.OccupantService"
	BillServiceName     = "roomshare.v1.BillService"
	PaymentServiceName  = "roomshare.v1.PaymentService"
	PropertyServiceName = "roomshare.v1.PropertyService"
)

const (
	OccupantServiceAddOccupantProcedure      = "/" + OccupantServiceName + "/AddOccupant"
	OccupantServiceRemoveOccupantProcedure   = "/" + OccupantServiceName + "/RemoveOccupant"
	OccupantServiceUpdateShareProcedure      = "/" + OccupantServiceName + "/UpdateShare"
	OccupantServiceListOccupantsProcedure    = "/" + OccupantServiceName + "/ListOccupants"
	OccupantServiceGetTotalsProcedure        = "/" + OccupantServiceName + "/GetTotals"
	OccupantServiceAddDiscountProcedure      = "/" + OccupantServiceName + "/AddDiscount"
	OccupantServiceUpdateDiscountProcedure   = "/" + OccupantServiceName + "/UpdateDiscount"
	OccupantServiceRemoveDiscountProcedure   = "/" + OccupantServiceName + "/RemoveDiscount"
	OccupantServiceGetEffectiveRentProcedure = "/" + OccupantServiceName + "/GetEffectiveRent"

	BillServiceGenerateBillsProcedure = "/" + BillServiceName + "/GenerateBills"
	BillServiceAddBillProcedure       = "/" + BillServiceName + "/AddBill"
	BillServiceUpdateBillProcedure    = "/" + BillServiceName + "/UpdateBill"
	BillServiceDeleteBillProcedure    = "/" + BillServiceName + "/DeleteBill"
	BillServiceGetBillProcedure       = "/" + BillServiceName + "/GetBill"
	BillServiceListBillsProcedure     = "/" + BillServiceName + "/ListBills"
	BillServiceMarkOverdueProcedure   = "/" + BillServiceName + "/MarkOverdue"
	BillServiceGetSummaryProcedure    = "/" + BillServiceName + "/GetSummary"
	BillServiceGetStatementProcedure  = "/" + BillServiceName + "/GetStatement"

	PaymentServiceSubmitPaymentProcedure  = "/" + PaymentServiceName + "/SubmitPayment"
	PaymentServiceApprovePaymentProcedure = "/" + PaymentServiceName + "/ApprovePayment"
	PaymentServiceRejectPaymentProcedure  = "/" + PaymentServiceName + "/RejectPayment"
	PaymentServiceGetPaymentProcedure     = "/" + PaymentServiceName + "/GetPayment"
	PaymentServiceListPaymentsProcedure   = "/" + PaymentServiceName + "/ListPayments"

	PropertyServiceGetPropertyProcedure    = "/" + PropertyServiceName + "/GetProperty"
	PropertyServiceUpdatePropertyProcedure = "/" + PropertyServiceName + "/UpdateProperty"
)

// ValidationInterceptor rejects requests whose struct tags do not validate
// with CodeInvalidArgument before they reach a handler.
func ValidationInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if err := validateRequest(req.Any()); err != nil {
				return nil, err
			}
			return next(ctx, req)
		}
	}
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSONCodec()}, opts...)
}

func unary[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// NewOccupantServiceHandler builds an HTTP handler for the service and
// returns the path on which to mount it.
func NewOccupantServiceHandler(svc *OccupantService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, OccupantServiceAddOccupantProcedure, svc.AddOccupant, opts)
	unary(mux, OccupantServiceRemoveOccupantProcedure, svc.RemoveOccupant, opts)
	unary(mux, OccupantServiceUpdateShareProcedure, svc.UpdateShare, opts)
	unary(mux, OccupantServiceListOccupantsProcedure, svc.ListOccupants, opts)
	unary(mux, OccupantServiceGetTotalsProcedure, svc.GetTotals, opts)
	unary(mux, OccupantServiceAddDiscountProcedure, svc.AddDiscount, opts)
	unary(mux, OccupantServiceUpdateDiscountProcedure, svc.UpdateDiscount, opts)
	unary(mux, OccupantServiceRemoveDiscountProcedure, svc.RemoveDiscount, opts)
	unary(mux, OccupantServiceGetEffectiveRentProcedure, svc.GetEffectiveRent, opts)
	return "/" + OccupantServiceName + "/", mux
}

// NewBillServiceHandler builds an HTTP handler for the service and returns
// the path on which to mount it.
func NewBillServiceHandler(svc *BillService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, BillServiceGenerateBillsProcedure, svc.GenerateBills, opts)
	unary(mux, BillServiceAddBillProcedure, svc.AddBill, opts)
	unary(mux, BillServiceUpdateBillProcedure, svc.UpdateBill, opts)
	unary(mux, BillServiceDeleteBillProcedure, svc.DeleteBill, opts)
	unary(mux, BillServiceGetBillProcedure, svc.GetBill, opts)
	unary(mux, BillServiceListBillsProcedure, svc.ListBills, opts)
	unary(mux, BillServiceMarkOverdueProcedure, svc.MarkOverdue, opts)
	unary(mux, BillServiceGetSummaryProcedure, svc.GetSummary, opts)
	unary(mux, BillServiceGetStatementProcedure, svc.GetStatement, opts)
	return "/" + BillServiceName + "/", mux
}

// NewPaymentServiceHandler builds an HTTP handler for the service and
// returns the path on which to mount it.
func NewPaymentServiceHandler(svc *PaymentService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, PaymentServiceSubmitPaymentProcedure, svc.SubmitPayment, opts)
	unary(mux, PaymentServiceApprovePaymentProcedure, svc.ApprovePayment, opts)
	unary(mux, PaymentServiceRejectPaymentProcedure, svc.RejectPayment, opts)
	unary(mux, PaymentServiceGetPaymentProcedure, svc.GetPayment, opts)
	unary(mux, PaymentServiceListPaymentsProcedure, svc.ListPayments, opts)
	return "/" + PaymentServiceName + "/", mux
}

// NewPropertyServiceHandler builds an HTTP handler for the service and
// returns the path on which to mount it.
func NewPropertyServiceHandler(svc *PropertyService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, PropertyServiceGetPropertyProcedure, svc.GetProperty, opts)
	unary(mux, PropertyServiceUpdatePropertyProcedure, svc.UpdateProperty, opts)
	return "/" + PropertyServiceName + "/", mux
}

// Register mounts all four services on mux.
func Register(mux *http.ServeMux, core *Core, opts ...connect.HandlerOption) {
	mux.Handle(NewOccupantServiceHandler(NewOccupantService(core), opts...))
	mux.Handle(NewBillServiceHandler(NewBillService(core), opts...))
	mux.Handle(NewPaymentServiceHandler(NewPaymentService(core), opts...))
	mux.Handle(NewPropertyServiceHandler(NewPropertyService(core), opts...))
}
