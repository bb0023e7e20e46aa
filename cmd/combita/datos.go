package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"turismocombita/internal/config"
	"turismocombita/internal/content"
	"turismocombita/internal/store"
)

var datosCmd = &cobra.Command{
	Use:   "datos",
	Short: "Maintain the content document",
}

var (
	initMunicipio    string
	initDepartamento string
)

var datosInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty content document when none exists",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, done, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer done()

		err = st.Init(cmd.Context(), content.NewDocument(initMunicipio, initDepartamento))
		if errors.Is(err, store.ErrDocumentExists) {
			fmt.Println("Document already exists; nothing to do.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Document for %s, %s created.\n", initMunicipio, initDepartamento)
		return nil
	},
}

var datosRecalcularCmd = &cobra.Command{
	Use:   "recalcular",
	Short: "Recompute estadisticas from the collections and save",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, done, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer done()

		// Every save recomputes the statistics.
		doc, err := st.Update(cmd.Context(), func(*content.Document) error { return nil })
		if err != nil {
			return err
		}
		e := doc.Estadisticas
		fmt.Printf("hoteles=%d habitaciones=%d capacidad=%d restaurantes=%d aforo=%d eventos=%d lugares=%d\n",
			e.HotelesHospedajes, e.HabitacionesTotales, e.CapacidadAlojamiento,
			e.RestaurantesCafeterias, e.CapacidadGastronomica, e.Eventos, e.LugaresTuristicos)
		return nil
	},
}

func init() {
	datosInitCmd.Flags().StringVar(&initMunicipio, "municipio", "", "municipality name")
	datosInitCmd.Flags().StringVar(&initDepartamento, "departamento", "Boyacá", "department name")
	_ = datosInitCmd.MarkFlagRequired("municipio")

	datosCmd.AddCommand(datosInitCmd, datosRecalcularCmd)
}

func openStore(cmd *cobra.Command) (*store.DocumentStore, func(), error) {
	backend, _, closeBackend, err := openBackend(cmd.Context(), config.Load())
	if err != nil {
		return nil, nil, err
	}
	return store.NewDocumentStore(backend, store.DocumentName), closeBackend, nil
}
