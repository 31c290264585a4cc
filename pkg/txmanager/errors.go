package txmanager

import "errors"

var (
	// ErrBeginTx возвращается, если не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, если не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается, когда конфликт сериализации не разрешился за отведенные попытки
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)
