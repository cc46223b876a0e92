package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

// tables lists the DDL in dependency order. Every statement is idempotent.
// Parent rows referenced by a stage or shipment cannot be deleted.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		RoleID   INT PRIMARY KEY,
		RoleName VARCHAR(64) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		UserID      CHAR(36) PRIMARY KEY,
		Username    VARCHAR(255) NOT NULL,
		Email       VARCHAR(255) NOT NULL UNIQUE,
		PhoneNumber BIGINT NULL,
		RoleID      INT NOT NULL,
		Password    VARCHAR(255) NOT NULL,
		CONSTRAINT fk_users_role FOREIGN KEY (RoleID) REFERENCES roles(RoleID)
	)`,
	`CREATE TABLE IF NOT EXISTS couriers (
		CourierID   BIGINT AUTO_INCREMENT PRIMARY KEY,
		CourierName VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		LocationID      BIGINT AUTO_INCREMENT PRIMARY KEY,
		LocationAddress VARCHAR(512) NOT NULL,
		Latitude        DOUBLE NOT NULL,
		Longitude       DOUBLE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wet_leaves (
		WetLeavesID  BIGINT AUTO_INCREMENT PRIMARY KEY,
		UserID       CHAR(36) NOT NULL,
		Weight       DOUBLE NOT NULL,
		ReceivedTime DATETIME NOT NULL,
		Expiration   DATETIME NOT NULL,
		Status       VARCHAR(64) NOT NULL DEFAULT 'Awaiting',
		INDEX idx_wet_leaves_user (UserID),
		CONSTRAINT fk_wet_leaves_user FOREIGN KEY (UserID) REFERENCES users(UserID)
	)`,
	`CREATE TABLE IF NOT EXISTS dry_leaves (
		DryLeavesID      BIGINT AUTO_INCREMENT PRIMARY KEY,
		UserID           CHAR(36) NOT NULL,
		WetLeavesID      BIGINT NOT NULL,
		Processed_Weight DOUBLE NULL,
		Expiration       DATETIME NULL,
		Status           VARCHAR(64) NOT NULL DEFAULT 'Awaiting',
		INDEX idx_dry_leaves_user (UserID),
		INDEX idx_dry_leaves_parent (WetLeavesID),
		CONSTRAINT fk_dry_leaves_user FOREIGN KEY (UserID) REFERENCES users(UserID),
		CONSTRAINT fk_dry_leaves_wet FOREIGN KEY (WetLeavesID) REFERENCES wet_leaves(WetLeavesID)
	)`,
	`CREATE TABLE IF NOT EXISTS flour (
		FlourID      BIGINT AUTO_INCREMENT PRIMARY KEY,
		UserID       CHAR(36) NOT NULL,
		DryLeavesID  BIGINT NOT NULL,
		Flour_Weight DOUBLE NOT NULL,
		Expiration   DATETIME NULL,
		Status       VARCHAR(64) NOT NULL DEFAULT 'Awaiting',
		INDEX idx_flour_user (UserID),
		INDEX idx_flour_parent (DryLeavesID),
		CONSTRAINT fk_flour_user FOREIGN KEY (UserID) REFERENCES users(UserID),
		CONSTRAINT fk_flour_dry FOREIGN KEY (DryLeavesID) REFERENCES dry_leaves(DryLeavesID)
	)`,
	`CREATE TABLE IF NOT EXISTS shipments (
		ShipmentID            BIGINT AUTO_INCREMENT PRIMARY KEY,
		CourierID             BIGINT NOT NULL,
		UserID                CHAR(36) NOT NULL,
		ShipmentQuantity      BIGINT NOT NULL,
		ShipmentDate          DATETIME NULL,
		Check_in_Date         DATETIME NULL,
		Check_in_Quantity     BIGINT NULL,
		Harbor_Reception_File TINYINT(1) NULL,
		Rescalled_Weight      DOUBLE NULL,
		Rescalled_Date        DATETIME NULL,
		Centra_Reception_File TINYINT(1) NULL,
		INDEX idx_shipments_user (UserID),
		CONSTRAINT fk_shipments_courier FOREIGN KEY (CourierID) REFERENCES couriers(CourierID),
		CONSTRAINT fk_shipments_user FOREIGN KEY (UserID) REFERENCES users(UserID)
	)`,
	`CREATE TABLE IF NOT EXISTS shipment_flour_association (
		shipment_id BIGINT NOT NULL,
		flour_id    BIGINT NOT NULL,
		PRIMARY KEY (shipment_id, flour_id),
		CONSTRAINT fk_sfa_shipment FOREIGN KEY (shipment_id) REFERENCES shipments(ShipmentID) ON DELETE CASCADE,
		CONSTRAINT fk_sfa_flour FOREIGN KEY (flour_id) REFERENCES flour(FlourID) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS cities (
		CityID BIGINT AUTO_INCREMENT PRIMARY KEY,
		` + "`key`" + ` VARCHAR(64) NOT NULL UNIQUE,
		name   VARCHAR(255) NOT NULL,
		lat    DOUBLE NOT NULL,
		lng    DOUBLE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		ProductID   BIGINT AUTO_INCREMENT PRIMARY KEY,
		ProductName VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_settings (
		AdminSettingsID BIGINT AUTO_INCREMENT PRIMARY KEY,
		AdminFeeValue   BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS centra_initial_prices (
		InitialPriceID BIGINT AUTO_INCREMENT PRIMARY KEY,
		UserID         CHAR(36) NOT NULL,
		ProductID      BIGINT NOT NULL,
		InitialPrice   BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS discount_conditions (
		DiscountConditionID BIGINT AUTO_INCREMENT PRIMARY KEY,
		DiscountRate        BIGINT NOT NULL,
		ExpDayLeft          BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS centra_setting_details (
		SettingDetailID     BIGINT AUTO_INCREMENT PRIMARY KEY,
		UserID              CHAR(36) NOT NULL,
		ProductID           BIGINT NOT NULL,
		DiscountConditionID BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS market_shipments (
		MarketShipmentID BIGINT AUTO_INCREMENT PRIMARY KEY,
		CentraID         CHAR(36) NOT NULL,
		CustomerID       CHAR(36) NOT NULL,
		DryLeavesID      BIGINT NULL,
		PowderID         BIGINT NULL,
		status           VARCHAR(64) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS sub_transactions (
		SubTransactionID BIGINT AUTO_INCREMENT PRIMARY KEY,
		MarketShipmentID BIGINT NOT NULL,
		status           VARCHAR(64) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		TransactionID    BIGINT AUTO_INCREMENT PRIMARY KEY,
		SubTransactionID BIGINT NOT NULL,
		status           VARCHAR(64) NOT NULL DEFAULT ''
	)`,
}

//go:embed cities.yaml
var citiesYAML []byte

// LoadCities decodes the embedded city list.
func LoadCities() ([]model.City, error) {
	var doc struct {
		Cities []model.City `yaml:"cities"`
	}
	if err := yaml.Unmarshal(citiesYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}
	return doc.Cities, nil
}

// EnsureSchema creates missing tables and seeds the fixed role table and the
// city list. It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, ddl := range tables {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	for _, r := range model.Roles() {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO roles (RoleID, RoleName) VALUES (?, ?) ON DUPLICATE KEY UPDATE RoleName = VALUES(RoleName)",
			r.RoleID, r.RoleName); err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}
	}
	cities, err := LoadCities()
	if err != nil {
		return err
	}
	for _, c := range cities {
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO cities (`key`, name, lat, lng) VALUES (?, ?, ?, ?)",
			c.Key, c.Name, c.Lat, c.Lng); err != nil {
			return fmt.Errorf("seed cities: %w", err)
		}
	}
	return nil
}
