package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/handler"
)

func registerUsers(e *echo.Echo, u *handler.UserHandler, admin []echo.MiddlewareFunc) {
	e.POST("/role/post", u.CreateRole, admin...)
	e.GET("/roles/get", u.ListRoles)
	e.DELETE("/roles/delete/:role_id", u.DeleteRole, admin...)

	e.POST("/user/post", u.Create)
	e.GET("/user/get", u.List)
	e.GET("/user/count", u.Count)
	e.GET("/user/get_role/:role_id", u.ByRole)
	e.GET("/user/get_user/:user_id", u.Get)
	e.GET("/user/get_user_email/:email", u.GetByEmail)
	e.GET("/users_with_shipments", u.WithShipments)
	e.PUT("/user/put/:user_id", u.Update)
	e.PUT("/user/update_phone/:user_id", u.UpdatePhone)
	e.PUT("/user/admin_put/:user_id", u.AdminUpdate, admin...)
	e.PUT("/user/update_role/:user_id", u.UpdateRole, admin...)
	e.DELETE("/user/delete/:user_id", u.Delete, admin...)
}

func registerReference(e *echo.Echo, r *handler.ReferenceHandler) {
	e.POST("/courier/post", r.CreateCourier)
	e.GET("/courier/get", r.ListCouriers)
	e.GET("/courier/get/:courier_id", r.GetCourier)
	e.DELETE("/courier/delete/:courier_id", r.DeleteCourier)

	e.POST("/location/post", r.CreateLocation)
	e.GET("/location/get", r.ListLocations)
	e.GET("/location/getid/:location_id", r.GetLocation)
	e.DELETE("/location/delete/:location_id", r.DeleteLocation)

	e.GET("/cities", r.ListCities)
}

func registerStages(e *echo.Echo, s *handler.StageHandler) {
	e.POST("/wetLeaves/post", s.Wet.Post)
	e.POST("/wetleaves/post", s.Wet.Post)
	e.GET("/wetleaves/get", s.Wet.List)
	e.GET("/wetleaves/get/:wet_leaves_id", s.Wet.Get)
	e.GET("/wetleaves/get_by_user/:user_id", s.Wet.ByUser)
	e.GET("/wetleaves/sum_weight_today/:user_id", s.SumWeightToday)
	e.DELETE("/wetleaves/delete/:wet_leaves_id", s.Wet.Delete)
	e.PUT("/wetleaves/put/:wet_leaves_id", s.Wet.UpdateWeight)
	e.PUT("/wetleaves/update_status/:wet_leaves_id", s.Wet.UpdateStatus)

	e.POST("/dryleaves/post", s.Dry.Post)
	e.GET("/dryleaves/get", s.Dry.List)
	e.GET("/dryleaves/get/", s.Dry.List)
	e.GET("/dryleaves/get/:dry_leaves_id", s.Dry.Get)
	e.GET("/dryleaves/get_by_user/:user_id", s.Dry.ByUser)
	e.DELETE("/dryleaves/delete/:dry_leaves_id", s.Dry.Delete)
	e.PUT("/dryleaves/put/:dry_leaves_id", s.Dry.UpdateWeight)
	e.PUT("/dryleaves/update_status/:dry_leaves_id", s.Dry.UpdateStatus)

	e.POST("/flour/post", s.Flour.Post)
	e.GET("/flour/get", s.Flour.List)
	e.GET("/flour/get/:flour_id", s.Flour.Get)
	e.GET("/flour/get_by_user/:user_id", s.Flour.ByUser)
	e.DELETE("/flour/delete/:flour_id", s.Flour.Delete)
	e.PUT("/flour/put/:flour_id", s.Flour.UpdateWeight)
	e.PUT("/flour/update_status/:flour_id", s.Flour.UpdateStatus)

	e.GET("/items", s.Items)
	e.GET("/items/", s.Items)
}

func registerShipments(e *echo.Echo, s *handler.ShipmentHandler) {
	e.POST("/shipment/post", s.Create)
	e.GET("/shipment/get", s.List)
	e.GET("/shipment/getid/:shipment_id", s.Get)
	e.GET("/shipment/get_by_user/:user_id", s.ByUser)
	e.GET("/shipments/ids", s.IDs)
	e.GET("/check_shipment_ids", s.PendingCheckIn)
	e.PUT("/shipment/put/:shipment_id", s.Update)
	e.PUT("/shipment/update_date/:shipment_id", s.UpdateDate)
	e.PUT("/shipment/update_check_in/:shipment_id", s.UpdateCheckIn)
	e.PUT("/shipment/update_rescalled_weight/:shipment_id", s.UpdateRescale)
	e.PUT("/shipment/update_harbor_reception/:shipment_id", s.UpdateHarborReception)
	e.PUT("/shipment/update_centra_reception/:shipment_id", s.UpdateCentraReception)
	e.DELETE("/shipment/delete/:shipment_id", s.Delete)
	e.GET("/shipment_flour_association/get", s.Associations)
}

func registerStatistics(e *echo.Echo, s *handler.StatisticsHandler, cache echo.MiddlewareFunc) {
	e.GET("/statistics/all", s.All, cache)
	e.GET("/statistics/all_no_format", s.AllRaw, cache)
	e.GET("/centra/statistics/:user_id", s.Centra, cache)
}
