package provider

import "github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"

// DBExecutor общий интерфейс для *sql.DB и транзакций
type DBExecutor = dbmetrics.DBExecutor
