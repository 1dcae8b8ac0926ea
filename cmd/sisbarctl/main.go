// Comando sisbarctl: tareas operativas (migraciones, alertas, bootstrap de administrador).
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
