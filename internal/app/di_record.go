package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/allisson/demands/internal/config"
	cryptoService "github.com/allisson/demands/internal/crypto/service"
	"github.com/allisson/demands/internal/fileutil"
	recordHTTP "github.com/allisson/demands/internal/record/http"
	recordRepository "github.com/allisson/demands/internal/record/repository"
	recordService "github.com/allisson/demands/internal/record/service"
	recordUseCase "github.com/allisson/demands/internal/record/usecase"
)

// dataFilePerm is the mode of files written by the store.
const dataFilePerm os.FileMode = 0o600

// KeyManager returns the store key manager.
func (c *Container) KeyManager() *cryptoService.KeyManager {
	c.keyManagerInit.Do(func() {
		c.keyManager = cryptoService.NewKeyManager(c.config.KeyFilePath(), os.Getenv(config.KeyEnvVar))
	})
	return c.keyManager
}

// SealedFileStore returns the store for files wrapped in the authenticated envelope.
func (c *Container) SealedFileStore() *recordRepository.SealedFileStore {
	c.sealedFileStoreInit.Do(func() {
		c.sealedFileStore = recordRepository.NewSealedFileStore(
			c.KeyManager(),
			cryptoService.NewContainer(cryptoService.NewStreamCipher()),
			fileutil.NewAtomicWriter(dataFilePerm),
		)
	})
	return c.sealedFileStore
}

// PlainFileStore returns the store for plaintext export files.
func (c *Container) PlainFileStore() *recordRepository.PlainFileStore {
	c.plainFileStoreInit.Do(func() {
		c.plainFileStore = recordRepository.NewPlainFileStore(fileutil.NewAtomicWriter(dataFilePerm))
	})
	return c.plainFileStore
}

// RecordRepository returns the repository backed by the encrypted data file.
func (c *Container) RecordRepository() *recordRepository.FileRepository {
	c.recordRepositoryInit.Do(func() {
		c.recordRepository = recordRepository.NewFileRepository(
			c.config.DataFilePath(),
			c.SealedFileStore(),
			recordService.NewTableCodec(),
		)
	})
	return c.recordRepository
}

// RecordUseCase returns the record store. The data file is loaded, repaired and
// persisted on first access.
func (c *Container) RecordUseCase() (recordUseCase.RecordUseCase, error) {
	var err error
	c.recordUseCaseInit.Do(func() {
		c.recordUseCase, err = c.initRecordUseCase()
		if err != nil {
			c.initErrors["recordUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordUseCase"]; exists {
		return nil, storedErr
	}
	return c.recordUseCase, nil
}

// RecordHandler returns the HTTP handler for record operations.
func (c *Container) RecordHandler() (*recordHTTP.RecordHandler, error) {
	var err error
	c.recordHandlerInit.Do(func() {
		c.recordHandler, err = c.initRecordHandler()
		if err != nil {
			c.initErrors["recordHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordHandler"]; exists {
		return nil, storedErr
	}
	return c.recordHandler, nil
}

// initRecordUseCase creates the record store with all its dependencies.
func (c *Container) initRecordUseCase() (recordUseCase.RecordUseCase, error) {
	if err := os.MkdirAll(c.config.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	baseUseCase, err := recordUseCase.NewRecordStore(
		context.Background(),
		c.RecordRepository(),
		c.SealedFileStore(),
		c.PlainFileStore(),
		recordService.NewRecordValidator(),
		recordService.NewExportCodec(c.config.Delimiter()),
		recordService.NewBackupCodec(),
		time.Now,
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for record use case: %w", err)
		}
		return recordUseCase.NewRecordUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initRecordHandler creates the record HTTP handler with all its dependencies.
func (c *Container) initRecordHandler() (*recordHTTP.RecordHandler, error) {
	useCase, err := c.RecordUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get record use case for record handler: %w", err)
	}

	return recordHTTP.NewRecordHandler(useCase, time.Now, c.Logger()), nil
}
